// @title                       Cafe Critique API
// @version                     1.0
// @description                 Restaurant review backend: accounts, restaurants, blogs, comments, reactions and ratings.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import "github.com/cafecritique/review-api/cmd/cafecritique/commands"

func main() {
	commands.Execute()
}
