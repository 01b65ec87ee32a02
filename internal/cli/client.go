package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// CampaignResponse — кампания из API.
type CampaignResponse struct {
	ID        string `json:"id"`
	Goal      string `json:"goal"`
	Status    string `json:"status"`
	Approved  int    `json:"approved"`
	Rejected  int    `json:"rejected"`
	PlannedAt string `json:"planned_at,omitempty"`
	CreatedAt string `json:"created_at"`
}

// EscalationResponse — эскалация из API.
type EscalationResponse struct {
	WorkItemID string         `json:"work_item_id"`
	CampaignID string         `json:"campaign_id"`
	WorkerID   string         `json:"worker_id"`
	Confidence float64        `json:"confidence"`
	Output     map[string]any `json:"output,omitempty"`
	Timestamp  string         `json:"timestamp"`
}

// VerdictResponse — запись аудиторского журнала из API.
type VerdictResponse struct {
	WorkItemID string  `json:"work_item_id"`
	CampaignID string  `json:"campaign_id"`
	WorkerID   string  `json:"worker_id"`
	Verdict    string  `json:"verdict"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
	RecordedAt string  `json:"recorded_at"`
}

// BudgetResponse — расходы и лимиты из API.
type BudgetResponse struct {
	DailySpend  map[string]float64 `json:"daily_spend"`
	SpendLimits map[string]float64 `json:"spend_limits"`
}

// FleetResponse — состояния агентов из API.
type FleetResponse struct {
	Agents map[string]string `json:"agents"`
}

// --- Request types ---

// StartCampaignRequest — запуск кампании.
type StartCampaignRequest struct {
	ID   string `json:"id,omitempty"`
	Goal string `json:"goal"`
}

// SetLimitRequest — установка дневного лимита.
type SetLimitRequest struct {
	Currency string  `json:"currency"`
	Limit    float64 `json:"limit"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Chimera API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Campaigns ---

// ListCampaigns возвращает все кампании.
func (c *Client) ListCampaigns() ([]CampaignResponse, error) {
	var campaigns []CampaignResponse
	err := c.list("/api/v1/campaigns", &campaigns)
	return campaigns, err
}

// StartCampaign запускает новую кампанию.
func (c *Client) StartCampaign(id, goal string) (*CampaignResponse, error) {
	var campaign CampaignResponse
	err := c.post("/api/v1/campaigns", StartCampaignRequest{ID: id, Goal: goal}, &campaign)
	return &campaign, err
}

// GetCampaign возвращает кампанию по ID.
func (c *Client) GetCampaign(id string) (*CampaignResponse, error) {
	var campaign CampaignResponse
	err := c.get("/api/v1/campaigns/"+id, &campaign)
	return &campaign, err
}

// ListVerdicts возвращает аудиторский журнал кампании.
func (c *Client) ListVerdicts(campaignID string) ([]VerdictResponse, error) {
	var verdicts []VerdictResponse
	err := c.list("/api/v1/campaigns/"+campaignID+"/verdicts", &verdicts)
	return verdicts, err
}

// --- Escalations ---

// ListEscalations возвращает результаты, ожидающие решения.
func (c *Client) ListEscalations() ([]EscalationResponse, error) {
	var escalations []EscalationResponse
	err := c.list("/api/v1/escalations", &escalations)
	return escalations, err
}

// ApproveEscalation принимает эскалированный результат.
func (c *Client) ApproveEscalation(id string) error {
	return c.post("/api/v1/escalations/"+id+"/approve", nil, nil)
}

// RejectEscalation отклоняет эскалированный результат.
func (c *Client) RejectEscalation(id string) error {
	return c.post("/api/v1/escalations/"+id+"/reject", nil, nil)
}

// --- Budget ---

// GetBudget возвращает расходы и лимиты.
func (c *Client) GetBudget() (*BudgetResponse, error) {
	var budget BudgetResponse
	err := c.get("/api/v1/budget", &budget)
	return &budget, err
}

// SetBudgetLimit устанавливает дневной лимит для валюты.
func (c *Client) SetBudgetLimit(currency string, limit float64) (*BudgetResponse, error) {
	var budget BudgetResponse
	err := c.put("/api/v1/budget/limits", SetLimitRequest{Currency: currency, Limit: limit}, &budget)
	return &budget, err
}

// --- Fleet ---

// GetFleet возвращает состояния агентов роя.
func (c *Client) GetFleet() (*FleetResponse, error) {
	var fleet FleetResponse
	err := c.get("/api/v1/fleet", &fleet)
	return &fleet, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) put(path string, body any, result any) error {
	return c.doData(http.MethodPut, path, body, result)
}

func (c *Client) list(path string, result any) error {
	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
