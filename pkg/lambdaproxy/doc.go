// Package lambdaproxy runs an http.Handler behind API Gateway on AWS Lambda.
//
// Both proxy payload formats are supported: REST APIs (1.0, events.APIGatewayProxyRequest)
// and HTTP APIs (2.0, events.APIGatewayV2HTTPRequest). Handle sniffs the format, so a
// single function can sit behind either:
//
//	adapter := lambdaproxy.New(router, lambdaproxy.WithLogger(log))
//	lambda.Start(adapter.Handle)
//
// The method comes from httpMethod, requestContext.http.method, or the routeKey prefix,
// in that order. Base64 flagged bodies are decoded with formdata.RawBody, so multipart
// uploads reach the handler byte for byte; an undecodable body is answered with a 400
// envelope without calling the handler. The gateway request ID is forwarded in the
// X-Amzn-RequestId header for requestid.Middleware.
//
// Responses with a textual, valid UTF-8 body are returned as is; anything else is
// base64 encoded and flagged.
package lambdaproxy
