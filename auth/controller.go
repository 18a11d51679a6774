// Package auth orchestrates the OAuth2 authorization-code-with-PKCE flow
// against a Fotoware tenant for a public client.
//
// The flow spans a full external redirect, so there is no in-memory
// continuation: Login persists the challenge and hands back the authorize URL
// for the host's navigator, and Resume is the next-entry-point handler that
// either completes a pending callback or restores a cached token.
package auth

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-fotoware-picker/config"
	"github.com/jrsteele09/go-fotoware-picker/credentials"
	apperrors "github.com/jrsteele09/go-fotoware-picker/internal/errors"
	"github.com/jrsteele09/go-fotoware-picker/pkce"
)

const (
	authorizePath = "/fotoweb/oauth2/authorize"
	tokenPath     = "/fotoweb/oauth2/token"

	// defaultTokenLifetime applies when the token response omits expires_in.
	defaultTokenLifetime = 3600 * time.Second
)

// Listener observes session transitions.
type Listener func(Session)

// Controller owns the authentication session. It starts in StatusUnknown and
// only Resume, Logout or a remount (a new Controller) move it from there.
type Controller struct {
	creds      *credentials.Store
	oauth      *oauth2.Config
	httpClient *http.Client
	nowTime    func() time.Time

	mu        sync.Mutex
	session   Session
	nextID    int
	listeners map[int]Listener
}

// Option modifies a Controller.
type Option func(*Controller)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Controller) {
		c.nowTime = nowFunc
	}
}

// WithHTTPClient sets the HTTP client used for the token exchange.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) {
		c.httpClient = client
	}
}

// New creates a Controller for the configured tenant. The endpoint uses
// AuthStyleInParams: a public client authenticates with client_id in the
// form body, never with a secret.
func New(cfg config.Config, creds *credentials.Store, options ...Option) *Controller {
	c := &Controller{
		creds: creds,
		oauth: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: cfg.RedirectURI,
			Scopes:      []string{cfg.Scope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.BaseURL + authorizePath,
				TokenURL:  cfg.BaseURL + tokenPath,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		nowTime:   time.Now,
		session:   Session{Status: StatusUnknown},
		listeners: make(map[int]Listener),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Subscribe registers a listener for session transitions and returns its
// cancel function. Listeners are invoked synchronously after each transition.
func (c *Controller) Subscribe(fn Listener) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Login starts a fresh authorization attempt: it generates and persists a new
// PKCE challenge (replacing any previous one) and returns the authorize URL
// the host must navigate to. The flow resumes via Resume on the next entry.
func (c *Controller) Login() (string, error) {
	pair, err := pkce.GeneratePkcePair()
	if err != nil {
		return "", err
	}
	state := pkce.GenerateState()

	if err := c.creds.SavePkce(credentials.StoredPkce{CodeVerifier: pair.CodeVerifier, State: state}); err != nil {
		return "", err
	}

	return c.oauth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", pair.CodeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	), nil
}

// Resume runs the startup resolution once per mount. When currentURL carries
// code and state it completes the pending callback; otherwise it restores the
// cached token. It returns the URL the host should show: on a successful
// exchange the code and state parameters are stripped, everything else is
// returned unchanged. All failure paths converge on StatusUnauthenticated.
func (c *Controller) Resume(ctx context.Context, currentURL string) string {
	u, err := url.Parse(currentURL)
	if err != nil {
		log.Err(err).Msg("unparsable entry URL, falling back to cached token")
		c.resumeFromCache()
		return currentURL
	}

	q := u.Query()
	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		c.resumeFromCache()
		return currentURL
	}

	if !c.completeCallback(ctx, code, state) {
		return currentURL
	}

	q.Del("code")
	q.Del("state")
	u.RawQuery = q.Encode()
	return u.String()
}

// Logout clears the cached token and goes unauthenticated unconditionally.
func (c *Controller) Logout() {
	c.creds.ClearToken()
	c.setSession(Session{Status: StatusUnauthenticated})
}

func (c *Controller) completeCallback(ctx context.Context, code, state string) bool {
	stored := c.creds.LoadPkce()
	if stored == nil {
		log.Err(apperrors.ErrMissingChallenge).Msg("discarding authorization callback")
		c.setSession(Session{Status: StatusUnauthenticated})
		return false
	}
	if stored.State != state {
		log.Err(apperrors.ErrStateMismatch).Msg("discarding authorization callback")
		c.creds.ClearPkce()
		c.setSession(Session{Status: StatusUnauthenticated})
		return false
	}

	// Consume the challenge before exchanging so a replayed callback can
	// never reuse the verifier.
	c.creds.ClearPkce()

	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	token, err := c.oauth.Exchange(ctx, code, oauth2.SetAuthURLParam("code_verifier", stored.CodeVerifier))
	if err != nil {
		log.Err(err).Msg("token exchange failed")
		c.setSession(Session{Status: StatusUnauthenticated})
		return false
	}

	expiresAt := token.Expiry
	if expiresAt.IsZero() {
		expiresAt = c.nowTime().Add(defaultTokenLifetime)
	}

	if err := c.creds.SaveToken(credentials.StoredToken{
		AccessToken: token.AccessToken,
		ExpiresAt:   expiresAt.UnixMilli(),
	}); err != nil {
		log.Err(err).Msg("persisting access token failed, session will not survive a restart")
	}

	c.setSession(Session{
		Status:      StatusAuthenticated,
		AccessToken: token.AccessToken,
		ExpiresAt:   expiresAt,
	})
	return true
}

func (c *Controller) resumeFromCache() {
	if stored := c.creds.LoadToken(); stored != nil {
		c.setSession(Session{
			Status:      StatusAuthenticated,
			AccessToken: stored.AccessToken,
			ExpiresAt:   time.UnixMilli(stored.ExpiresAt),
		})
		return
	}
	c.setSession(Session{Status: StatusUnauthenticated})
}

func (c *Controller) setSession(session Session) {
	c.mu.Lock()
	c.session = session
	observers := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		observers = append(observers, fn)
	}
	c.mu.Unlock()

	for _, fn := range observers {
		fn(session)
	}
}
