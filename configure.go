package main

import (
	"github.com/urfave/cli"
)

func configure(app *cli.App) {
	serveCMD := makeServeCMD()
	migrationCMD := makePGMigrationCMD()
	userCMD := makeUserCMD()
	app.Commands = []cli.Command{serveCMD, migrationCMD, userCMD}
}
