package api

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/soundbridge/opportunity-engine/internal/db"
	"github.com/soundbridge/opportunity-engine/internal/match"
	"github.com/soundbridge/opportunity-engine/internal/models"
	"github.com/soundbridge/opportunity-engine/internal/scan"
)

type Server struct {
	Store    *db.Store
	Scanner  *scan.Scanner
	Registry *scan.Registry
	Engine   *match.Engine
	Echo     *echo.Echo
	DB       *pgxpool.Pool
}

var (
	adminSecretOnce    sync.Once
	adminSecretRuntime string
	adminSecretErr     error
)

func NewServer(pool *pgxpool.Pool, scanner *scan.Scanner, registry *scan.Registry) *Server {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from env or default to localhost
	allowedOrigins := []string{"http://localhost:4200"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Admin-Secret"},
	}))

	store := db.NewStore(pool)

	s := &Server{
		DB:       pool,
		Store:    store,
		Scanner:  scanner,
		Registry: registry,
		Engine:   match.NewEngine(store, store, match.StaticRoles),
		Echo:     e,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	api := s.Echo.Group("/api/v1")
	api.GET("/opportunities", s.handleListOpportunities)
	api.GET("/matches/:userID", s.handleFindMatches)
	api.GET("/report/:userID", s.handleGenerateReport)
	api.GET("/stats", s.handleGetStats)
	api.GET("/scan/stats", s.handleGetScanStats)
	api.GET("/sources", s.handleGetSources)
	api.PUT("/profiles/:userID", s.handleUpsertProfile)

	// Admin routes (scan triggers)
	admin := api.Group("")
	admin.Use(s.adminMiddleware)
	admin.POST("/scan", s.handleTriggerScan)
	admin.POST("/discover", s.handleDiscoverSources)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleListOpportunities(c echo.Context) error {
	criteria := criteriaFromQuery(c)

	var profile *models.UserProfile
	if userID := strings.TrimSpace(c.QueryParam("user_id")); userID != "" {
		p, err := s.Store.GetProfile(c.Request().Context(), userID)
		if err == nil {
			profile = p
		}
	}

	scored, err := s.Engine.GetFilteredOpportunities(c.Request().Context(), criteria, profile)
	if err != nil {
		c.Logger().Errorf("Failed to list opportunities: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total":         len(scored),
		"opportunities": scored,
	})
}

func (s *Server) handleFindMatches(c echo.Context) error {
	userID := c.Param("userID")
	matches, err := s.Engine.FindMatchesForUser(c.Request().Context(), userID)
	if err != nil {
		c.Logger().Errorf("Failed to find matches for %s: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user_id": userID,
		"total":   len(matches),
		"matches": matches,
	})
}

func (s *Server) handleGenerateReport(c echo.Context) error {
	report, err := s.Engine.GeneratePersonalizedReport(c.Request().Context(), c.Param("userID"))
	if err != nil {
		c.Logger().Errorf("Failed to generate report: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) handleGetStats(c echo.Context) error {
	stats, err := s.Engine.GetOpportunityStatistics(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) handleGetScanStats(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Scanner.Statistics())
}

func (s *Server) handleGetSources(c echo.Context) error {
	tier := c.QueryParam("tier")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"total":   s.Registry.Size(),
		"sources": s.Registry.Sources(tier),
	})
}

func (s *Server) handleUpsertProfile(c echo.Context) error {
	var profile models.UserProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	profile.ID = c.Param("userID")
	if profile.ID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "user ID is required"})
	}

	if err := s.Store.UpsertProfile(c.Request().Context(), profile); err != nil {
		c.Logger().Errorf("Failed to upsert profile: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
	}

	return c.JSON(http.StatusOK, profile)
}

func (s *Server) handleTriggerScan(c echo.Context) error {
	scanType := scan.ScanType(strings.TrimSpace(c.QueryParam("type")))
	if scanType == "" {
		scanType = scan.ScanQuick
	}
	if scanType != scan.ScanQuick && scanType != scan.ScanFull {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "type must be quick or full"})
	}

	result, err := s.Scanner.Scan(c.Request().Context(), scanType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":  err.Error(),
			"result": result,
		})
	}
	if !result.Success {
		// A scan of the same type is already running.
		return c.JSON(http.StatusConflict, result)
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleDiscoverSources(c echo.Context) error {
	added, err := s.Scanner.DiscoverNewSources(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":       "Source discovery complete",
		"new_sources":   added,
		"registry_size": s.Registry.Size(),
	})
}

// criteriaFromQuery builds filter criteria from query parameters. Malformed
// values are ignored, matching the all-optional criteria contract.
func criteriaFromQuery(c echo.Context) match.Criteria {
	criteria := match.Criteria{
		Categories:        splitCSV(c.QueryParam("categories")),
		Regions:           splitCSV(c.QueryParam("regions")),
		CompensationTypes: splitCSV(c.QueryParam("compensation")),
		Tags:              splitCSV(c.QueryParam("tags")),
	}

	if v := c.QueryParam("min_credibility"); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			criteria.CredibilityThreshold = &t
		}
	}
	if v := c.QueryParam("managed_only"); v != "" {
		criteria.ManagedTalentOnly = strings.EqualFold(v, "true")
	}

	var amounts match.AmountRange
	if v, err := strconv.ParseFloat(c.QueryParam("min_amount"), 64); err == nil && v > 0 {
		amounts.Min = v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_amount"), 64); err == nil && v > 0 {
		amounts.Max = v
	}
	if amounts.Min > 0 || amounts.Max > 0 {
		criteria.AmountRange = &amounts
	}

	var dates match.DateRange
	if t, err := time.Parse(time.RFC3339, c.QueryParam("deadline_after")); err == nil {
		dates.Start = t
	}
	if t, err := time.Parse(time.RFC3339, c.QueryParam("deadline_before")); err == nil {
		dates.End = t
	}
	if !dates.Start.IsZero() || !dates.End.IsZero() {
		criteria.DeadlineRange = &dates
	}

	return criteria
}

// splitCSV splits a comma-separated query parameter into trimmed non-empty strings.
func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret, err := adminSecret()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server admin configuration error"})
		}

		// Check X-Admin-Secret header or Bearer token
		authHeader := c.Request().Header.Get("Authorization")
		adminHeader := c.Request().Header.Get("X-Admin-Secret")

		if adminHeader == secret {
			return next(c)
		}
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			if authHeader[7:] == secret {
				return next(c)
			}
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized admin access"})
	}
}

func adminSecret() (string, error) {
	adminSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
		if secret != "" {
			adminSecretRuntime = secret
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			adminSecretErr = fmt.Errorf("failed to generate ADMIN_SECRET fallback: %w", err)
			return
		}

		adminSecretRuntime = base64.RawURLEncoding.EncodeToString(buf)
		log.Print("ADMIN_SECRET is not set; using ephemeral in-memory fallback secret")
	})

	if adminSecretErr != nil {
		return "", adminSecretErr
	}
	if adminSecretRuntime == "" {
		return "", fmt.Errorf("admin secret unavailable")
	}

	return adminSecretRuntime, nil
}
