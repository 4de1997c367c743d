/*
Package direct fetches secrets from the AWS Secrets Manager API instead of the
Lambda extension.

Secrets fetched this way are resolved exactly like those returned by the
extension, and failures are reported with the same error kinds.  This allows
code, such as the lambdasecret command, to run outside of Lambda.
*/
package direct
