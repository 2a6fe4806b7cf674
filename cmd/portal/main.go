// Command portal runs the intranet portal API and its maintenance jobs.
//
// @title                       Portal API
// @version                     1.0
// @description                 Corporate intranet portal: directory login, carousel, birthdays and resources.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import "github.com/intranet-portal/portal-api/cmd/portal/cmd"

func main() {
	cmd.Execute()
}
