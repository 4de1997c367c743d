/*
Package payload interprets the JSON document returned by the secrets extension.

Interpretation happens in two steps.  First the document's shape is checked:
ARN, Name, and SecretString must be strings, and VersionId must be a string if
it is present.  Then the secret text is resolved:  if its first non-whitespace
character is '{' it is decoded as JSON, otherwise it is returned exactly as
received.

	r, err := payload.Interpret(body)
	if err != nil {
		return err // KindShape or KindParse
	}

	creds, err := payload.As[Credentials](r)
*/
package payload
