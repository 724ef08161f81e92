package session

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaweb/tienda/database/model"
)

func newEngine(user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions(CookieName, cookie.NewStore([]byte("test-secret-32-bytes-long-000000"))))
	engine.Use(Middleware())
	engine.GET("/login", func(c *gin.Context) {
		if err := Login(c, user, 3600); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	engine.GET("/logout", func(c *gin.Context) {
		_ = Logout(c)
		c.Status(http.StatusNoContent)
	})
	engine.GET("/whoami", func(c *gin.Context) {
		identity := Current(c)
		if identity == nil {
			c.JSON(http.StatusOK, gin.H{"login": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"login": true, "username": identity.Username, "admin": IsAdmin(c)})
	})
	return engine
}

func whoami(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	rec, err := client.Get(url + "/whoami")
	require.NoError(t, err)
	defer rec.Body.Close()
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestAdminFlagIsCapturedAtLogin(t *testing.T) {
	user := &model.User{Id: 1, Username: "ana", Admin: true}
	srv := httptest.NewServer(newEngine(user))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	assert.JSONEq(t, `{"login":false}`, whoami(t, client, srv.URL))

	_, err = client.Get(srv.URL + "/login")
	require.NoError(t, err)

	// the stored record loses its admin flag; the session keeps the snapshot
	user.Admin = false
	assert.JSONEq(t, `{"login":true,"username":"ana","admin":true}`, whoami(t, client, srv.URL))

	_, err = client.Get(srv.URL + "/login")
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":true,"username":"ana","admin":false}`, whoami(t, client, srv.URL))
}

func TestLogoutIsIdempotent(t *testing.T) {
	user := &model.User{Id: 2, Username: "luis"}
	srv := httptest.NewServer(newEngine(user))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	_, err = client.Get(srv.URL + "/logout")
	require.NoError(t, err)
	_, err = client.Get(srv.URL + "/login")
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":true,"username":"luis","admin":false}`, whoami(t, client, srv.URL))

	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL + "/logout")
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	assert.JSONEq(t, `{"login":false}`, whoami(t, client, srv.URL))
}

func TestCurrentWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions(CookieName, cookie.NewStore([]byte("secret"))))
	engine.GET("/", func(c *gin.Context) {
		assert.Nil(t, Current(c))
		assert.False(t, IsAdmin(c))
		c.Status(http.StatusOK)
	})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
