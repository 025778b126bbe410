package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sautiai-dashboard/internal/audit"
	"sautiai-dashboard/internal/auth"
	"sautiai-dashboard/internal/campaign"
	"sautiai-dashboard/internal/credits"
	"sautiai-dashboard/internal/prefs"
	"sautiai-dashboard/internal/rbac"
	"sautiai-dashboard/internal/scheduler"
	"sautiai-dashboard/internal/upstream"

	"github.com/gin-gonic/gin"
)

func withTestIdentity(workspaceID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), "u-1", workspaceID, role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func TestWriteError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"campaign already active", campaign.ErrAlreadyActive, http.StatusConflict},
		{"no active campaign", campaign.ErrNoActive, http.StatusNotFound},
		{"agent required", campaign.ErrAgentRequired, http.StatusBadRequest},
		{"sms too long", campaign.ErrSMSTooLong, http.StatusBadRequest},
		{"upstream not found", upstream.ErrNotFound, http.StatusNotFound},
		{"upstream unreachable", upstream.ErrUnreachable, http.StatusBadGateway},
		{"insufficient credits", credits.ErrInsufficientCredits, http.StatusPaymentRequired},
		{"bad schedule", scheduler.ErrInvalidArgument, http.StatusBadRequest},
		{"missing schedule", scheduler.ErrNotFound, http.StatusNotFound},
		{"bad prefs", prefs.ErrInvalidArgument, http.StatusBadRequest},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) { writeError(c, tc.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestWriteError_AgentRequiredMessageVerbatim(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", func(c *gin.Context) { writeError(c, campaign.ErrAgentRequired) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	want := `{"error":"Please select an AI agent"}`
	if w.Body.String() != want {
		t.Fatalf("body = %s, want %s", w.Body.String(), want)
	}
}

func TestListContacts_FiltersAndFormats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contacts" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"c1","workspace_id":"ws-1","name":"Jane Wanjiku","phone_number":"+254700000001","debt_amount":2500,"payment_status":"overdue"},
			{"id":"c2","workspace_id":"ws-1","name":"Peter Otieno","phone_number":"+254700000002","debt_amount":100.5,"payment_status":"paid"}
		]`))
	}))
	defer core.Close()

	client, err := upstream.NewClient(core.URL, time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	h := Handlers{Upstream: client, Audit: audit.NewService(audit.NewMemoryRepo())}

	r := gin.New()
	r.GET("/contacts", withTestIdentity("ws-1", rbac.RoleAgent), h.ListContacts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacts?status=overdue", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !contains(body, `"total":1`) || !contains(body, "Jane Wanjiku") {
		t.Fatalf("unexpected body: %s", body)
	}
	if !contains(body, `"debt_display":"KSh 2,500"`) {
		t.Fatalf("debt not formatted: %s", body)
	}
	if !contains(body, `"status_badge":"OVERDUE"`) {
		t.Fatalf("badge missing: %s", body)
	}
}

func TestHandlers_RequireIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := Handlers{}
	r := gin.New()
	r.GET("/contacts", h.ListContacts)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contacts", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func TestCreateAgent_VoiceMustResolveInCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/voices":
			_, _ = w.Write([]byte(`[{"voice_id":"zuri","name":"Zuri","provider":"core","language":"sw-KE"}]`))
		case r.URL.Path == "/agents" && r.Method == http.MethodPost:
			_, _ = w.Write([]byte(`{"id":"a1","workspace_id":"ws-1","name":"Collector"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer core.Close()

	client, err := upstream.NewClient(core.URL, time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	h := Handlers{Upstream: client, Audit: audit.NewService(audit.NewMemoryRepo())}

	r := gin.New()
	r.POST("/agents", withTestIdentity("ws-1", rbac.RoleManager), h.CreateAgent)

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/agents", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	if w := post(`{"name":"Collector","prompt_template":"Collect politely.","voice_id":"zuri"}`); w.Code != http.StatusCreated {
		t.Fatalf("known voice: status = %d body = %s", w.Code, w.Body.String())
	}
	if w := post(`{"name":"Collector","prompt_template":"Collect politely.","voice_id":"ghost"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown voice: status = %d body = %s", w.Code, w.Body.String())
	} else if !contains(w.Body.String(), "voice_id does not resolve") {
		t.Fatalf("unknown voice body: %s", w.Body.String())
	}
	// No voice yet is a legal unconfigured agent.
	if w := post(`{"name":"Collector","prompt_template":"Collect politely."}`); w.Code != http.StatusCreated {
		t.Fatalf("no voice: status = %d body = %s", w.Code, w.Body.String())
	}
}
