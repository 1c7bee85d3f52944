// Package llm provides a config-driven chat completion client built on
// httpclient.
//
// Providers differ only in their wire format, so each one is a [Dialect]
// that maps [CompletionRequest] and [CompletionResponse] to and from its
// JSON. The [Adapter] owns the HTTP client, applies model defaults, renews
// credentials through an optional [Authenticator] and implements
// provider.RequestResponse[CompletionRequest, CompletionResponse].
//
// Dialect packages register themselves on import:
//
//	import _ "github.com/kbukum/slaybot/llm/mistral"
//
//	adapter, err := llm.New(llm.Config{Dialect: "mistral", APIKey: key})
//	text, err := llm.Complete(ctx, adapter, systemPrompt, userText)
package llm
