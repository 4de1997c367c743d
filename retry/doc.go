/*
Package retry implements the resilient request executor used to talk to the
secrets extension.

A Client decorates another HTTP client.  Each call to Do makes up to
Config.Attempts tries, each bounded by Config.Timeout:

	c, err := retry.NewClient(retry.Config{
		Timeout:     2 * time.Second,
		Attempts:    3,
		BaseBackoff: 300 * time.Millisecond,
	}, nil) // decorates http.DefaultClient

Responses are classified as follows:

  - 2xx ends the operation successfully.
  - 429, 500, 502, 503, 504, and a 400 whose body says the extension is
    not ready to serve traffic are retried.  See DefaultCheck.
  - any other status fails immediately.
  - timeouts and connection-level errors are retried.  See DefaultCheckError.

Between attempts the Client waits using "full jitter":  after attempt n fails,
the wait is a uniformly random duration in

	[0, BaseBackoff * 2^n)

Timeouts are per attempt.  The request's context is the only way to bound or
cancel the whole operation.
*/
package retry
