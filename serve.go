package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/tubeview/web-api/handlers/comments"
	"github.com/tubeview/web-api/handlers/users"
	"github.com/tubeview/web-api/handlers/videos"
	"github.com/tubeview/web-api/services/auth"
	"github.com/tubeview/web-api/services/comment"
	"github.com/tubeview/web-api/services/common"
	"github.com/tubeview/web-api/services/library"
	"github.com/tubeview/web-api/services/profile"
	"github.com/tubeview/web-api/services/view"
	w "github.com/tubeview/web-api/services/web"
	"github.com/tubeview/web-api/services/youtube"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = youtube.RegisterFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = common.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting Migrations
	err := runMigrations(pg)
	if err != nil {
		return err
	}

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Gin
	r := w.NewEngine()

	// Setting CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:  common.Origins(c),
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", w.RequestIDHeader},
		ExposeHeaders: []string{w.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	// Setting Web
	web, err := w.New(c, r)
	if err != nil {
		return err
	}
	servers = append(servers, web)
	defer web.Close()

	// Setting Auth
	a, err := auth.New(c, pg)
	if err != nil {
		return err
	}
	a.RegisterHandler(r)

	// Setting YouTube Api
	yt := youtube.New(c)

	// Setting VideosHandler
	lib := library.New(pg, yt)
	videos.RegisterHandler(r, yt, view.New(yt), lib)

	// Setting UsersHandler
	users.RegisterHandler(r, profile.New(pg), lib)

	// Setting CommentsHandler
	comments.RegisterHandler(r, comment.New(pg))

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
