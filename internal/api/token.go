package api

import (
	"net/http"
	"net/url"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Имя httpOnly cookie с access-токеном, как его выставляет бэкенд.
const accessTokenCookie = "access-token"

// AccessTokenExpiry достаёт срок жизни access-токена из cookie jar.
// Подпись не проверяется — токен принадлежит серверу, нам нужен только
// exp для отображения в настройках и диагностики refresh.
func (c *Client) AccessTokenExpiry() (time.Time, bool) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return time.Time{}, false
	}

	var token string
	for _, cookie := range c.httpClient.Jar.Cookies(base) {
		if cookie.Name == accessTokenCookie {
			token = cookie.Value
			break
		}
	}
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// SetCookies нужен тестам транспорта, чтобы подложить токены в jar.
func (c *Client) SetCookies(u *url.URL, cookies []*http.Cookie) {
	c.httpClient.Jar.SetCookies(u, cookies)
}
