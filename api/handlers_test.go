package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gallerykit/gallery-engine/internal/rules"
	"github.com/gallerykit/gallery-engine/model"
)

const testShop = "handler-test.myshopify.com"

func setupTestRouter() (*gin.Engine, *rules.Service) {
	gin.SetMode(gin.TestMode)
	ruleService := rules.NewService(rules.NewMemoryRuleStore())
	router := gin.New()
	SetupRoutes(router, ruleService, nil)
	return router, ruleService
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validRulePayload(name string) RuleRequest {
	return RuleRequest{
		Name:     name,
		Priority: 10,
		Conditions: model.ConditionGroup{
			Condition: &model.Condition{Field: "device", Operator: "equals", Value: "mobile"},
		},
		Actions: []model.Action{
			{
				Type:        model.ActionTypeFilter,
				Mode:        "exclude",
				MatchType:   model.MatchTypeMediaType,
				MatchValues: []string{"video"},
			},
		},
	}
}

func TestHealthCheckHandler(t *testing.T) {
	router, _ := setupTestRouter()
	w := performRequest(router, http.MethodGet, "/health", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestCreateRuleHandler(t *testing.T) {
	router, _ := setupTestRouter()

	w := performRequest(router, http.MethodPost, "/api/v1/shops/"+testShop+"/rules", validRulePayload("Hide videos"))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	var resp RuleResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Rule.ID == "" {
		t.Error("created rule should carry an ID")
	}
	if resp.Rule.Status != model.RuleStatusDraft {
		t.Errorf("created rule status = %s, want draft", resp.Rule.Status)
	}
}

func TestCreateRuleHandlerValidation(t *testing.T) {
	router, _ := setupTestRouter()

	payload := validRulePayload("Broken")
	payload.Actions = []model.Action{{Type: "teleport"}}

	w := performRequest(router, http.MethodPost, "/api/v1/shops/"+testShop+"/rules", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}

	var apiErr APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if apiErr.Code != ErrorCodeValidationFailed {
		t.Errorf("error code = %s, want %s", apiErr.Code, ErrorCodeValidationFailed)
	}
	if len(apiErr.Details) == 0 {
		t.Error("validation errors should include field details")
	}
}

func TestCreateRuleHandlerInvalidJSON(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops/"+testShop+"/rules", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListRulesHandler(t *testing.T) {
	router, service := setupTestRouter()
	seedRule(t, service, "One")
	seedRule(t, service, "Two")

	w := performRequest(router, http.MethodGet, "/api/v1/shops/"+testShop+"/rules", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp RuleListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Rules) != 2 {
		t.Errorf("count = %d, rules = %d, want 2 each", resp.Count, len(resp.Rules))
	}
	if resp.Settings.MaxRulesPerEvaluation != model.DefaultMaxRulesPerEvaluation {
		t.Errorf("settings should carry defaults, got %+v", resp.Settings)
	}
}

func seedRule(t *testing.T, service *rules.Service, name string) model.Rule {
	t.Helper()
	req := validRulePayload(name)
	rule, err := service.AddRule(testShop, req.toModel(""))
	if err != nil {
		t.Fatalf("failed to seed rule: %v", err)
	}
	return rule
}

func TestGetRuleHandler(t *testing.T) {
	router, service := setupTestRouter()
	rule := seedRule(t, service, "Findable")

	w := performRequest(router, http.MethodGet, "/api/v1/shops/"+testShop+"/rules/"+rule.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w = performRequest(router, http.MethodGet, "/api/v1/shops/"+testShop+"/rules/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var apiErr APIError
	_ = json.Unmarshal(w.Body.Bytes(), &apiErr)
	if apiErr.Code != ErrorCodeRuleNotFound {
		t.Errorf("error code = %s, want %s", apiErr.Code, ErrorCodeRuleNotFound)
	}
}

func TestUpdateRuleHandler(t *testing.T) {
	router, service := setupTestRouter()
	rule := seedRule(t, service, "Original")

	payload := validRulePayload("Renamed")
	payload.Status = model.RuleStatusActive

	w := performRequest(router, http.MethodPut, "/api/v1/shops/"+testShop+"/rules/"+rule.ID, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	var resp RuleResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Rule.Name != "Renamed" || resp.Rule.Status != model.RuleStatusActive {
		t.Errorf("updated rule = %+v", resp.Rule)
	}

	w = performRequest(router, http.MethodPut, "/api/v1/shops/"+testShop+"/rules/missing", payload)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteRuleHandler(t *testing.T) {
	router, service := setupTestRouter()
	rule := seedRule(t, service, "Doomed")

	w := performRequest(router, http.MethodDelete, "/api/v1/shops/"+testShop+"/rules/"+rule.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w = performRequest(router, http.MethodDelete, "/api/v1/shops/"+testShop+"/rules/"+rule.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("double delete status = %d, want 404", w.Code)
	}
}

func TestToggleRuleHandler(t *testing.T) {
	router, service := setupTestRouter()
	rule := seedRule(t, service, "Toggleable")

	w := performRequest(router, http.MethodPost, "/api/v1/shops/"+testShop+"/rules/"+rule.ID+"/toggle", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp RuleResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Rule.Status != model.RuleStatusActive {
		t.Errorf("draft rule should toggle to active, got %s", resp.Rule.Status)
	}

	w = performRequest(router, http.MethodPost, "/api/v1/shops/"+testShop+"/rules/"+rule.ID+"/toggle", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Rule.Status != model.RuleStatusPaused {
		t.Errorf("active rule should toggle to paused, got %s", resp.Rule.Status)
	}
}

func TestReorderRulesHandler(t *testing.T) {
	router, service := setupTestRouter()
	r1 := seedRule(t, service, "One")
	r2 := seedRule(t, service, "Two")

	body := map[string]interface{}{"rule_ids": []string{r2.ID, r1.ID}}
	w := performRequest(router, http.MethodPost, "/api/v1/shops/"+testShop+"/rules/reorder", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	record, _ := service.GetShopRules(testShop)
	if record.Rules[0].ID != r2.ID {
		t.Errorf("first rule = %s, want %s", record.Rules[0].ID, r2.ID)
	}

	body = map[string]interface{}{"rule_ids": []string{r1.ID}}
	w = performRequest(router, http.MethodPost, "/api/v1/shops/"+testShop+"/rules/reorder", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("partial reorder status = %d, want 400", w.Code)
	}
}

func TestSettingsHandlers(t *testing.T) {
	router, _ := setupTestRouter()

	w := performRequest(router, http.MethodGet, "/api/v1/shops/"+testShop+"/settings", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp SettingsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Settings.EnableRules {
		t.Error("fresh shops should get default settings with rules enabled")
	}

	update := model.GlobalSettings{EnableRules: false, MaxRulesPerEvaluation: 3}
	w = performRequest(router, http.MethodPut, "/api/v1/shops/"+testShop+"/settings", update)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}

	w = performRequest(router, http.MethodGet, "/api/v1/shops/"+testShop+"/settings", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Settings.EnableRules || resp.Settings.MaxRulesPerEvaluation != 3 {
		t.Errorf("settings = %+v, want the stored update", resp.Settings)
	}
}

func TestTemplateHandlers(t *testing.T) {
	router, service := setupTestRouter()

	w := performRequest(router, http.MethodGet, "/api/v1/templates", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var list TemplateListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if list.Count == 0 {
		t.Fatal("template catalog should not be empty")
	}

	w = performRequest(router, http.MethodPost,
		"/api/v1/shops/"+testShop+"/templates/"+list.Templates[0].ID+"/apply", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("apply status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	record, _ := service.GetShopRules(testShop)
	if len(record.Rules) != 1 {
		t.Errorf("shop should hold the applied rule, got %d", len(record.Rules))
	}

	w = performRequest(router, http.MethodPost, "/api/v1/shops/"+testShop+"/templates/nonexistent/apply", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown template status = %d, want 404", w.Code)
	}
}

func TestGetAnalyticsHandlerWithoutStorage(t *testing.T) {
	router, _ := setupTestRouter()

	w := performRequest(router, http.MethodGet, "/api/v1/shops/"+testShop+"/analytics", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when analytics storage is absent", w.Code)
	}
}
