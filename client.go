package podpointclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/rs/zerolog"
)

// DefaultIncludes is the expansion set requested with every pod read.
var DefaultIncludes = []string{
	"statuses", "price", "model", "unit_connectors", "charge_schedules", "charge_override",
}

// UserIncludes is the expansion set requested with the user profile.
var UserIncludes = []string{
	"account", "vehicle", "vehicle.make",
	"unit.pod.unit_connectors", "unit.pod.statuses", "unit.pod.model",
	"unit.pod.charge_schedules", "unit.pod.charge_override",
}

const defaultPerPage = 5

// PodPointClient is the typed client for the Pod Point mobile API. One
// instance serves one logical user; credentials and the backend session are
// owned by its Auth and refreshed transparently before every domain call.
type PodPointClient struct {
	Auth *Auth

	wrapper          *APIWrapper
	endpoints        Endpoints
	clock            Time
	logger           zerolog.Logger
	includeTimestamp bool
	validate         *validator.Validate
}

type Option func(*clientConfig)

type clientConfig struct {
	httpClient       *http.Client
	timeout          time.Duration
	endpoints        Endpoints
	clock            Time
	logger           zerolog.Logger
	includeTimestamp bool
}

// WithHTTPClient shares a caller-owned HTTP client. The client is only ever
// read; all credential state lives on the Auth.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = httpClient
	}
}

// WithTimeout overrides the per-call timeout, default 10s.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithEndpoints points the client at alternative base URLs.
func WithEndpoints(endpoints Endpoints) Option {
	return func(c *clientConfig) {
		c.endpoints = endpoints
	}
}

// WithClock injects the time source used for expiry checks.
func WithClock(clock Time) Option {
	return func(c *clientConfig) {
		c.clock = clock
	}
}

// WithLogger enables structured debug logging. Logging never influences
// control flow.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithTimestamp adds a timestamp query parameter to every domain call, which
// defeats intermediary caches.
func WithTimestamp() Option {
	return func(c *clientConfig) {
		c.includeTimestamp = true
	}
}

func NewPodPointClient(email string, password string, opts ...Option) *PodPointClient {
	cfg := &clientConfig{
		timeout:   DefaultTimeout,
		endpoints: DefaultEndpoints(),
		clock:     RealTime{},
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	wrapper := NewAPIWrapper(cfg.httpClient, cfg.timeout, cfg.logger)
	return &PodPointClient{
		Auth:             NewAuth(email, password, wrapper, cfg.endpoints, cfg.clock, cfg.logger),
		wrapper:          wrapper,
		endpoints:        cfg.endpoints,
		clock:            cfg.clock,
		logger:           cfg.logger,
		includeTimestamp: cfg.includeTimestamp,
		validate:         validator.New(),
	}
}

// CredentialsVerified performs a minimum round trip to prove the credentials
// work: a full auth cycle plus a single-pod read.
func (c *PodPointClient) CredentialsVerified(ctx context.Context) (bool, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return false, err
	}
	pods, err := c.Pods(ctx, 1, 1, []string{})
	if err != nil {
		return false, err
	}
	return len(pods) > 0, nil
}

// Pods fetches one page of the user's pods.
func (c *PodPointClient) Pods(ctx context.Context, perPage int, page int, includes []string) ([]Pod, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return nil, err
	}

	if includes == nil {
		includes = DefaultIncludes
	}
	params := url.Values{}
	params.Set("perpage", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	if len(includes) > 0 {
		params.Set("include", strings.Join(includes, ","))
	}

	target := c.url(PathUsers + "/" + c.Auth.UserID() + PathPods)
	resp, err := c.wrapper.Get(ctx, target, c.completeParams(params), authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return nil, err
	}

	var envelope podsEnvelope
	if err := c.handleJSON(resp, &envelope); err != nil {
		return nil, err
	}
	return envelope.Pods, nil
}

// AllPods walks every page of the pods resource.
func (c *PodPointClient) AllPods(ctx context.Context, includes []string) ([]Pod, error) {
	pods := []Pod{}
	for page := 1; ; page++ {
		next, err := c.Pods(ctx, defaultPerPage, page, includes)
		if err != nil {
			return nil, err
		}
		pods = append(pods, next...)
		// Reading meta.pagination.page_count would avoid the short-page
		// heuristic but needs the envelope meta block plumbed through.
		if len(next) < defaultPerPage {
			return pods, nil
		}
	}
}

// FindPod returns the pod with the given id, or nil if the account has none.
func (c *PodPointClient) FindPod(ctx context.Context, podID int) (*Pod, error) {
	pods, err := c.AllPods(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range pods {
		if pods[i].ID == podID {
			return &pods[i], nil
		}
	}
	return nil, nil
}

// SetSchedule replaces the weekly charge schedule on the pod's unit, with
// every day's entry enabled or disabled as given. The API answers 201 when
// the schedule document is accepted.
func (c *PodPointClient) SetSchedule(ctx context.Context, enabled bool, pod Pod) (bool, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return false, err
	}

	c.logger.Debug().Int("unit_id", pod.UnitID).Bool("enabled", enabled).Msg("updating pod schedule")

	body, err := json.Marshal(schedulesDocument{Data: NewWeeklySchedules(enabled)})
	if err != nil {
		return false, err
	}

	target := c.url(PathUnits + "/" + strconv.Itoa(pod.UnitID) + PathChargeSchedules)
	resp, err := c.wrapper.Put(ctx, target, c.completeParams(nil), body, authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return false, err
	}

	if resp.StatusCode != http.StatusCreated {
		c.logger.Warn().Int("status", resp.StatusCode).Str("body", string(resp.Body)).
			Msg("expected 201 status code when creating schedules")
		return false, nil
	}
	return true, nil
}

// Charges fetches one page of the user's charging sessions.
func (c *PodPointClient) Charges(ctx context.Context, perPage int, page int) ([]Charge, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("perpage", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))

	target := c.url(PathUsers + "/" + c.Auth.UserID() + PathCharges)
	resp, err := c.wrapper.Get(ctx, target, c.completeParams(params), authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return nil, err
	}

	var envelope chargesEnvelope
	if err := c.handleJSON(resp, &envelope); err != nil {
		return nil, err
	}
	return envelope.Charges, nil
}

// AllCharges walks every page of the charges resource.
func (c *PodPointClient) AllCharges(ctx context.Context, perPage int) ([]Charge, error) {
	if perPage <= 0 {
		perPage = 50
	}
	charges := []Charge{}
	for page := 1; ; page++ {
		next, err := c.Charges(ctx, perPage, page)
		if err != nil {
			return nil, err
		}
		charges = append(charges, next...)
		if len(next) < perPage {
			return charges, nil
		}
	}
}

// User fetches the account profile with its account, vehicle and unit blocks.
func (c *PodPointClient) User(ctx context.Context) (*User, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("include", strings.Join(UserIncludes, ","))

	resp, err := c.wrapper.Get(ctx, c.url(PathAuth), c.completeParams(params), authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return nil, err
	}

	var envelope userEnvelope
	if err := c.handleJSON(resp, &envelope); err != nil {
		return nil, err
	}
	return envelope.Users, nil
}

// Firmwares fetches firmware state for the pod's unit.
func (c *PodPointClient) Firmwares(ctx context.Context, pod Pod) ([]Firmware, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return nil, err
	}

	target := c.url(PathUnits + "/" + strconv.Itoa(pod.UnitID) + PathFirmware)
	resp, err := c.wrapper.Get(ctx, target, c.completeParams(nil), authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return nil, err
	}

	var envelope firmwaresEnvelope
	if err := c.handleJSON(resp, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ConnectivityStatus fetches the charger's connection state by PPID.
func (c *PodPointClient) ConnectivityStatus(ctx context.Context, pod Pod) (*ConnectivityStatus, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return nil, err
	}

	target := c.url(PathChargers + "/" + pod.PPID + PathConnectivityStatus)
	resp, err := c.wrapper.Get(ctx, target, c.completeParams(nil), authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return nil, err
	}

	var status ConnectivityStatus
	if err := c.handleJSON(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ChargeOverride reads the current override on the pod's unit. A 204 or an
// empty body means no override is set and the unit is in smart mode; nil is
// returned in that case.
func (c *PodPointClient) ChargeOverride(ctx context.Context, pod Pod) (*ChargeOverride, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return nil, err
	}

	target := c.url(PathUnits + "/" + strconv.Itoa(pod.UnitID) + PathChargeOverride)
	resp, err := c.wrapper.Get(ctx, target, c.completeParams(nil), authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
		return nil, nil
	}

	var override ChargeOverride
	if err := c.handleJSON(resp, &override); err != nil {
		return nil, err
	}
	return &override, nil
}

// ChargeMode derives the pod's current charge mode from its override state.
func (c *PodPointClient) ChargeMode(ctx context.Context, pod Pod) (ChargeMode, error) {
	override, err := c.ChargeOverride(ctx, pod)
	if err != nil {
		return "", err
	}
	return override.Mode(c.clock.UTCNow()), nil
}

type chargeOverrideDuration struct {
	Hours   int `validate:"gte=0"`
	Minutes int `validate:"gte=0,lt=60"`
	Seconds int `validate:"gte=0,lt=60"`
}

func (d chargeOverrideDuration) duration() time.Duration {
	return time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}

// SetChargeOverride asks the unit to charge for the given duration from now.
// The duration is validated before any network call.
func (c *PodPointClient) SetChargeOverride(ctx context.Context, pod Pod, hours int, minutes int, seconds int) (*ChargeOverride, error) {
	d := chargeOverrideDuration{Hours: hours, Minutes: minutes, Seconds: seconds}
	if err := c.validate.Struct(d); err != nil {
		return nil, &ChargeOverrideValidationError{Message: err.Error()}
	}
	if d.duration() <= 0 {
		return nil, &ChargeOverrideValidationError{Message: "override duration must be greater than zero"}
	}

	endsAt := c.clock.UTCNow().Add(d.duration())
	return c.putChargeOverride(ctx, pod, &endsAt)
}

// SetChargeModeManual switches the unit to manual charging via an unbounded
// override. Returns true when the API acknowledged the override.
func (c *PodPointClient) SetChargeModeManual(ctx context.Context, pod Pod) (bool, error) {
	override, err := c.putChargeOverride(ctx, pod, nil)
	if err != nil {
		return false, err
	}
	return override != nil && override.PPID != "", nil
}

// SetChargeModeSmart returns the unit to schedule-driven charging by
// deleting any override. The API acknowledges the delete with a 204.
func (c *PodPointClient) SetChargeModeSmart(ctx context.Context, pod Pod) (bool, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return false, err
	}

	target := c.url(PathUnits + "/" + strconv.Itoa(pod.UnitID) + PathChargeOverride)
	resp, err := c.wrapper.Delete(ctx, target, c.completeParams(nil), authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return false, err
	}

	if resp.StatusCode != http.StatusNoContent {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("expected 204 status code when removing charge override")
		return false, nil
	}
	return true, nil
}

func (c *PodPointClient) putChargeOverride(ctx context.Context, pod Pod, endsAt *time.Time) (*ChargeOverride, error) {
	if _, err := c.Auth.EnsureValidCredentials(ctx); err != nil {
		return nil, err
	}

	requestedAt := c.clock.UTCNow()
	body, err := json.Marshal(ChargeOverride{
		PPID:        pod.PPID,
		RequestedAt: &requestedAt,
		EndsAt:      endsAt,
	})
	if err != nil {
		return nil, err
	}

	target := c.url(PathUnits + "/" + strconv.Itoa(pod.UnitID) + PathChargeOverride)
	resp, err := c.wrapper.Put(ctx, target, c.completeParams(nil), body, authHeaders(c.Auth.AccessToken()), ErrorKindAPI, DefaultStatusWindow)
	if err != nil {
		return nil, err
	}
	if len(resp.Body) == 0 {
		return nil, nil
	}

	var override ChargeOverride
	if err := c.handleJSON(resp, &override); err != nil {
		return nil, err
	}
	return &override, nil
}

func (c *PodPointClient) url(path string) string {
	return c.endpoints.APIBase + path
}

// completeParams appends the optional cache-busting timestamp.
func (c *PodPointClient) completeParams(params url.Values) url.Values {
	if !c.includeTimestamp {
		return params
	}
	if params == nil {
		params = url.Values{}
	}
	now := c.clock.UTCNow()
	params.Set("timestamp", fmt.Sprintf("%d.%d", now.Unix(), now.Nanosecond()/1e8))
	return params
}

func (c *PodPointClient) handleJSON(resp *APIResponse, v any) error {
	if err := resp.JSON(v); err != nil {
		return &APIError{Message: fmt.Sprintf("Error parsing response from Pod Point API - %s", err)}
	}
	c.logger.Debug().RawJSON("response", resp.Body).Msg("pod point payload")
	return nil
}
