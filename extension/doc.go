/*
Package extension fetches secrets from the AWS Lambda Secrets Manager extension.

The extension is a sidecar that listens on localhost, port 2773 by default, and
serves lookups at

	GET /secretsmanager/get?secretId=<name>

Each request must carry the function's session token in the
X-Aws-Parameters-Secrets-Token header.  ConfigFromEnv reads the token and the
port from the Lambda environment:

	cfg, err := extension.ConfigFromEnv()
	if err != nil {
		return err
	}

	client, err := extension.New(cfg)
	if err != nil {
		return err
	}

	password, err := extension.GetSecretValue[string](ctx, client, "db-password", extension.Options{})

While the extension is starting up, or if it is briefly unavailable, a fetch is
retried with full jitter backoff.  See the retry package.
*/
package extension
