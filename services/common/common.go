package common

import (
	"strings"
	"time"

	"github.com/urfave/cli"
)

var (
	CORSAllowedOriginsFlag = "cors-allowed-origins"
	JWTSecretFlag          = "jwt-secret"
	JWTTTLFlag             = "jwt-ttl"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	f = append(f,
		cli.StringSliceFlag{
			Name:   CORSAllowedOriginsFlag,
			Usage:  "origins allowed to call the api from a browser",
			Value:  &cli.StringSlice{"http://localhost:3000"},
			EnvVar: "CORS_ALLOWED_ORIGINS",
		},
	)
	return RegisterJWTFlags(f)
}

func RegisterJWTFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   JWTSecretFlag,
			Usage:  "secret used to sign and verify bearer tokens, required",
			EnvVar: "JWT_SECRET",
		},
		cli.DurationFlag{
			Name:   JWTTTLFlag,
			Usage:  "lifetime of bearer tokens issued by the user token command",
			Value:  7 * 24 * time.Hour,
			EnvVar: "JWT_TTL",
		},
	)
}

// Origins flattens comma separated values passed through a single env var.
func Origins(c *cli.Context) []string {
	var res []string
	for _, o := range c.StringSlice(CORSAllowedOriginsFlag) {
		for _, p := range strings.Split(o, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				res = append(res, p)
			}
		}
	}
	return res
}
