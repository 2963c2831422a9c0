package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/tubeview/web-api/models"
	sv "github.com/tubeview/web-api/services/common"
)

const userIDClaim = "user_id"

type userStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type pgUserStore struct {
	pg *cs.PG
}

func (s *pgUserStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	db, err := sv.DB(s.pg)
	if err != nil {
		return nil, err
	}
	return models.GetUserByID(ctx, db, id)
}

// Auth validates bearer tokens and resolves the user they were issued for.
type Auth struct {
	secret []byte
	ttl    time.Duration
	store  userStore
}

func New(c *cli.Context, pg *cs.PG) (*Auth, error) {
	secret := c.String(sv.JWTSecretFlag)
	if strings.TrimSpace(secret) == "" {
		return nil, errors.Errorf("%v must be set", sv.JWTSecretFlag)
	}
	ttl := c.Duration(sv.JWTTTLFlag)
	if ttl <= 0 {
		return nil, errors.Errorf("%v must be positive", sv.JWTTTLFlag)
	}
	return &Auth{
		secret: []byte(secret),
		ttl:    ttl,
		store:  &pgUserStore{pg: pg},
	}, nil
}

// MakeToken signs a token for the user valid for the configured ttl.
func (s *Auth) MakeToken(uID uuid.UUID) (string, error) {
	now := time.Now()
	clms := jwt.MapClaims{
		userIDClaim: uID.String(),
		"iat":       now.Unix(),
		"exp":       now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, clms)
	str, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return str, nil
}

func (s *Auth) parse(data string) (uuid.UUID, error) {
	token, err := jwt.Parse(data, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "failed to parse token")
	}
	clms, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token claims")
	}
	if _, ok := clms["exp"]; !ok {
		return uuid.Nil, errors.New("token has no expiration")
	}
	id, ok := clms[userIDClaim].(string)
	if !ok || id == "" {
		return uuid.Nil, errors.New("missing user id in token claims")
	}
	uID, err := uuid.FromString(id)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid user id in token (id=%v)", id)
	}
	return uID, nil
}

type User struct {
	*models.User
}

func (s *User) HasAuth() bool {
	return s.User != nil
}

type UserContext struct{}

type ErrorContext struct{}

func GetUserFromContext(c *gin.Context) *User {
	u := &User{}
	if mu, ok := c.Request.Context().Value(UserContext{}).(*models.User); ok {
		u.User = mu
	}
	return u
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RegisterHandler installs optional authentication for every route. Requests
// without a usable token proceed anonymously, HasAuth guards the routes that
// need a user.
func (s *Auth) RegisterHandler(r *gin.Engine) {
	r.Use(s.resolve)
}

func (s *Auth) resolve(c *gin.Context) {
	data := bearer(c.Request)
	if data == "" {
		c.Next()
		return
	}
	ctx := c.Request.Context()
	uID, err := s.parse(data)
	if err != nil {
		log.WithError(err).Debug("rejected bearer token")
		c.Request = c.Request.WithContext(context.WithValue(ctx, ErrorContext{}, err))
		c.Next()
		return
	}
	u, err := s.store.GetUser(ctx, uID)
	if err != nil {
		log.WithError(err).Error("failed to resolve user")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if u == nil {
		// user was deleted after the token was issued
		c.Request = c.Request.WithContext(context.WithValue(ctx, ErrorContext{}, errors.New("user not found")))
		c.Next()
		return
	}
	c.Request = c.Request.WithContext(context.WithValue(ctx, UserContext{}, u))
	c.Next()
}

func HasAuth(c *gin.Context) {
	u := GetUserFromContext(c)
	if !u.HasAuth() {
		msg := "Authorization required"
		if c.Request.Context().Value(ErrorContext{}) != nil {
			msg = "Token is not valid"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
		return
	}
	c.Next()
}
