// cmd/main.go
package main

import (
	"livelib-api/app"
)

// @title           LiveLib API
// @version         1.0
// @description     A library catalog API with cookie-based session management.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
