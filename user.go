package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
	"golang.org/x/crypto/bcrypt"

	"github.com/tubeview/web-api/models"
	"github.com/tubeview/web-api/services/auth"
	"github.com/tubeview/web-api/services/common"
)

const (
	emailFlag    = "email"
	usernameFlag = "username"
	passwordFlag = "password"
	avatarFlag   = "avatar"
	idFlag       = "id"
)

func makeUserCMD() cli.Command {
	userCmd := cli.Command{
		Name:    "user",
		Aliases: []string{"u"},
		Usage:   "Manages user accounts",
	}
	configureUser(&userCmd)
	return userCmd
}

func configureUser(c *cli.Command) {
	createCmd := cli.Command{
		Name:   "create",
		Usage:  "Creates user account",
		Action: createUser,
		Flags: []cli.Flag{
			cli.StringFlag{Name: emailFlag, Usage: "user email"},
			cli.StringFlag{Name: usernameFlag, Usage: "user name"},
			cli.StringFlag{Name: passwordFlag, Usage: "user password"},
			cli.StringFlag{Name: avatarFlag, Usage: "avatar url"},
		},
	}
	tokenCmd := cli.Command{
		Name:   "token",
		Usage:  "Issues bearer token for existing user",
		Action: issueToken,
		Flags: []cli.Flag{
			cli.StringFlag{Name: idFlag, Usage: "user id"},
			cli.StringFlag{Name: emailFlag, Usage: "user email, used when id is not set"},
		},
	}
	c.Subcommands = []cli.Command{createCmd, tokenCmd}
	for k := range c.Subcommands {
		c.Subcommands[k].Flags = cs.RegisterPGFlags(c.Subcommands[k].Flags)
		c.Subcommands[k].Flags = common.RegisterJWTFlags(c.Subcommands[k].Flags)
	}
}

func createUser(c *cli.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.String(emailFlag)))
	username := strings.TrimSpace(c.String(usernameFlag))
	password := c.String(passwordFlag)
	if email == "" || username == "" || password == "" {
		return errors.New("email, username and password are required")
	}

	pg := cs.NewPG(c)
	defer pg.Close()
	db, err := common.DB(pg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	ex, err := models.GetUserByEmail(ctx, db, email)
	if err != nil {
		return err
	}
	if ex != nil {
		return errors.Errorf("user with email %v already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}
	u := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Avatar:   c.String(avatarFlag),
	}
	if err := models.CreateUser(ctx, db, u); err != nil {
		return err
	}
	log.WithField("user_id", u.UserID).Info("user created")
	fmt.Println(u.UserID.String())
	return nil
}

func issueToken(c *cli.Context) error {
	pg := cs.NewPG(c)
	defer pg.Close()
	db, err := common.DB(pg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	var u *models.User
	if id := c.String(idFlag); id != "" {
		uID, err := uuid.FromString(id)
		if err != nil {
			return errors.Wrapf(err, "invalid user id %v", id)
		}
		u, err = models.GetUserByID(ctx, db, uID)
		if err != nil {
			return err
		}
	} else if email := strings.ToLower(strings.TrimSpace(c.String(emailFlag))); email != "" {
		u, err = models.GetUserByEmail(ctx, db, email)
		if err != nil {
			return err
		}
	} else {
		return errors.New("id or email is required")
	}
	if u == nil {
		return errors.New("user not found")
	}

	a, err := auth.New(c, pg)
	if err != nil {
		return err
	}
	token, err := a.MakeToken(u.UserID)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
