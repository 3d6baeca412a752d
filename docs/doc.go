// Package docs provides generated OpenAPI documentation.
//
// NovelQuest API
//
//	@title			NovelQuest API
//	@version		1.0
//	@description	Conversational book recommendation API backed by LLM providers.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/novelquest/novelquest
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/novelquest/serve.go -o ./swagger --parseDependency --parseInternal
