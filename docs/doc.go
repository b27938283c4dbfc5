// Package docs provides generated OpenAPI documentation.
//
// Redpen API
//
//	@title			Redpen API
//	@version		1.0
//	@description	Grammar and spelling correction API backed by LLM providers.
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	https://github.com/jackzampolin/redpen
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/redpen/serve.go -o . --parseDependency --parseInternal
