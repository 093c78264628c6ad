package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionStarter is satisfied by *mongo.Client.
type SessionStarter interface {
	StartSession(opts ...*options.SessionOptions) (mongo.Session, error)
}

// Session scopes every request to its own causally consistent Mongo
// session. The session is bound to the request context so repositories pick
// it up, and it is ended on every exit path.
func Session(starter SessionStarter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := starter.StartSession(options.Session().SetCausalConsistency(true))
			if err != nil {
				return fmt.Errorf("start session: %w", err)
			}
			req := c.Request()
			ctx := req.Context()
			defer sess.EndSession(ctx)

			c.SetRequest(req.WithContext(mongo.NewSessionContext(ctx, sess)))
			return next(c)
		}
	}
}
