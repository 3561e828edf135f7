package handler

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"expvar"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/emzola/kritika/data"
	"github.com/emzola/kritika/internal/token"
	"github.com/emzola/kritika/service"
	"github.com/felixge/httpsnoop"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/time/rate"
)

// recoverPanic middleware recovers from panics and will always be run in the event of a panic.
func (h *Handler) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				h.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// rateLimit middleware implements IP-based rate limiting to prevent clients from making too many requests
// too quickly, and putting excessive strain on the server.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	// Define a client struct to hold the rate limiter and last seen time for each
	// client.
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)
	// Launch a background goroutine which removes old entries from the clients map once
	// every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.config.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				h.serverErrorResponse(w, r, err)
				return
			}
			mu.Lock()
			if _, found := clients[ip]; !found {
				clients[ip] = &client{
					limiter: rate.NewLimiter(rate.Limit(h.config.Limiter.RPS), h.config.Limiter.Burst),
				}
			}
			clients[ip].lastSeen = time.Now()
			// Unlock before calling the next handler in the chain, and without
			// defer, so the mutex isn't held for the whole request.
			if !clients[ip].limiter.Allow() {
				mu.Unlock()
				h.rateLimitExceededResponse(w, r)
				return
			}
			mu.Unlock()
		}
		next.ServeHTTP(w, r)
	})
}

// enableCORS middleware relaxes the same-origin policy.
func (h *Handler) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")
		origin := r.Header.Get("Origin")
		if origin != "" {
			for i := range h.config.Cors.TrustedOrigins {
				if origin == h.config.Cors.TrustedOrigins[i] {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
						w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, PUT, PATCH, DELETE")
						w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
						w.WriteHeader(http.StatusOK)
						return
					}
					break
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate middleware authenticates users. It verifies the bearer access
// token and loads the user it was issued for, or attaches the anonymous user.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")
		authorizationHeader := r.Header.Get("Authorization")
		headerParts := strings.Split(authorizationHeader, " ")
		if authorizationHeader == "" || headerParts[0] == "Basic" {
			r = h.contextSetUser(r, data.AnonymousUser)
			next.ServeHTTP(w, r)
			return
		}
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			h.invalidAuthenticationTokenResponse(w, r)
			return
		}
		userID, err := h.signer.Verify(headerParts[1])
		if err != nil {
			switch {
			case errors.Is(err, token.ErrInvalidToken):
				h.invalidAuthenticationTokenResponse(w, r)
			default:
				h.serverErrorResponse(w, r, err)
			}
			return
		}
		user, err := h.service.ShowUserByID(userID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrRecordNotFound):
				h.invalidAuthenticationTokenResponse(w, r)
			default:
				h.serverErrorResponse(w, r, err)
			}
			return
		}
		r = h.contextSetUser(r, user)
		next.ServeHTTP(w, r)
	})
}

// requireAuthenticatedUser middleware checks that a user is not anonymous.
func (h *Handler) requireAuthenticatedUser(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.contextGetUser(r)
		if user.IsAnonymous() {
			h.authenticationRequiredResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdminOrSuperuser middleware guards the admin user-management surface:
// only admins and superusers get through, regardless of method.
func (h *Handler) requireAdminOrSuperuser(next http.HandlerFunc) http.HandlerFunc {
	fn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.contextGetUser(r)
		if !data.PermitAdminOrSuperuser(user) {
			h.notPermittedResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
	return h.requireAuthenticatedUser(fn)
}

// requireAdminOrReadOnly middleware lets anyone read but restricts writes to
// admins only; the superuser flag carries no weight in this family. Anonymous
// writers get a 401, everyone else a 403.
func (h *Handler) requireAdminOrReadOnly(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.contextGetUser(r)
		if data.IsSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		if user.IsAnonymous() {
			h.authenticationRequiredResponse(w, r)
			return
		}
		if !data.PermitAdminOrReadOnly(user, r.Method) {
			h.notPermittedResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireReviewAccessPermission middleware applies the object-level
// admin/moderator/owner-or-read-only check to a review. The review author is
// resolved once per review and cached.
func (h *Handler) requireReviewAccessPermission(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.contextGetUser(r)
		if data.IsSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		if user.IsAnonymous() {
			h.authenticationRequiredResponse(w, r)
			return
		}
		titleID, err := h.readIDParam(r, "titleId")
		if err != nil {
			h.notFoundResponse(w, r)
			return
		}
		reviewID, err := h.readIDParam(r, "reviewId")
		if err != nil {
			h.notFoundResponse(w, r)
			return
		}
		authorID, ok := h.reviewAuthorID(w, r, titleID, reviewID)
		if !ok {
			return
		}
		if !data.PermitAdminModeratorOwnerOrReadOnlyObject(user, r.Method, authorID) {
			h.notPermittedResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireCommentAccessPermission middleware applies the object-level
// admin/moderator/owner-or-read-only check to a comment.
func (h *Handler) requireCommentAccessPermission(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := h.contextGetUser(r)
		if data.IsSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		if user.IsAnonymous() {
			h.authenticationRequiredResponse(w, r)
			return
		}
		titleID, err := h.readIDParam(r, "titleId")
		if err != nil {
			h.notFoundResponse(w, r)
			return
		}
		reviewID, err := h.readIDParam(r, "reviewId")
		if err != nil {
			h.notFoundResponse(w, r)
			return
		}
		commentID, err := h.readIDParam(r, "commentId")
		if err != nil {
			h.notFoundResponse(w, r)
			return
		}
		authorID, ok := h.commentAuthorID(w, r, titleID, reviewID, commentID)
		if !ok {
			return
		}
		if !data.PermitAdminModeratorOwnerOrReadOnlyObject(user, r.Method, authorID) {
			h.notPermittedResponse(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// reviewAuthorID resolves the author of a review, going through the cache
// keyed by review ID. The boolean reports whether a response has NOT already
// been written.
func (h *Handler) reviewAuthorID(w http.ResponseWriter, r *http.Request, titleID, reviewID int64) (int64, bool) {
	key := fmt.Sprintf("reviewUserID:%d", reviewID)
	item := h.cache.Get(key)
	if item != nil {
		return item.Value(), true
	}
	review, err := h.service.ShowReview(titleID, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return 0, false
	}
	h.cache.Set(key, review.UserID, ttlcache.DefaultTTL)
	return review.UserID, true
}

// commentAuthorID resolves the author of a comment, going through the cache
// keyed by comment ID.
func (h *Handler) commentAuthorID(w http.ResponseWriter, r *http.Request, titleID, reviewID, commentID int64) (int64, bool) {
	key := fmt.Sprintf("commentUserID:%d", commentID)
	item := h.cache.Get(key)
	if item != nil {
		return item.Value(), true
	}
	comment, err := h.service.ShowComment(titleID, reviewID, commentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return 0, false
	}
	h.cache.Set(key, comment.UserID, ttlcache.DefaultTTL)
	return comment.UserID, true
}

// metrics middleware exposes request-level metrics.
func (h *Handler) metrics(next http.Handler) http.Handler {
	if h.config.Metrics.Enabled {
		totalRequestsReceived := expvar.NewInt("total_requests_received")
		totalResponsesSent := expvar.NewInt("total_responses_sent")
		totalProcessingTimeMicrosecond := expvar.NewInt("total_processing_time_μs")
		totalResponsesSentBystatus := expvar.NewMap("total_responses_sent_by_status")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			totalRequestsReceived.Add(1)
			metrics := httpsnoop.CaptureMetrics(next, w, r)
			totalResponsesSent.Add(1)
			totalProcessingTimeMicrosecond.Add(metrics.Duration.Microseconds())
			totalResponsesSentBystatus.Add(strconv.Itoa(metrics.Code), 1)
		})
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
	})
}

// basicAuth middleware implements basic authentication for the /debug/vars endpoint.
func (h *Handler) basicAuth(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if ok {
			usernameHash := sha256.Sum256([]byte(username))
			passwordHash := sha256.Sum256([]byte(password))
			expectedUsernameHash := sha256.Sum256([]byte(h.config.BasicAuth.Username))
			expectedPasswordHash := sha256.Sum256([]byte(h.config.BasicAuth.Password))
			usernameMatch := (subtle.ConstantTimeCompare(usernameHash[:], expectedUsernameHash[:]) == 1)
			passwordMatch := (subtle.ConstantTimeCompare(passwordHash[:], expectedPasswordHash[:]) == 1)
			if usernameMatch && passwordMatch {
				next.ServeHTTP(w, r)
				return
			}
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="restricted", charset="UTF-8"`)
		h.invalidCredentialsResponse(w, r)
	})
}
