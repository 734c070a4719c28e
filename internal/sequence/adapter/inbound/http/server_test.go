package http_handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthanhphan/go-sequence-service/internal/sequence/config"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/port"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/port/mocks"
	"github.com/anthanhphan/go-sequence-service/internal/sequence/service"
	"github.com/anthanhphan/go-sequence-service/pkg/idgen"
	"github.com/anthanhphan/go-sequence-service/pkg/resilience"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func doGet(t *testing.T, s *Server, target string) (int, map[string]any, string) {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return resp.StatusCode, body, resp.Header.Get(fiber.HeaderRetryAfter)
}

func TestServer_NextID(t *testing.T) {
	type mockSetup func(svc *mocks.MockSequenceService)

	tests := []struct {
		name       string
		target     string
		setup      mockSetup
		wantStatus int
		wantKey    string
	}{
		{
			name:   "application id",
			target: "/ids/order",
			setup: func(svc *mocks.MockSequenceService) {
				svc.EXPECT().NextID(gomock.Any(), "order", false).Return("501", nil)
			},
			wantStatus: fiber.StatusOK,
			wantKey:    "id",
		},
		{
			name:   "global id",
			target: "/ids/order/global",
			setup: func(svc *mocks.MockSequenceService) {
				svc.EXPECT().NextID(gomock.Any(), "order", true).Return("9001", nil)
			},
			wantStatus: fiber.StatusOK,
			wantKey:    "id",
		},
		{
			name:   "batch",
			target: "/ids/order?count=3",
			setup: func(svc *mocks.MockSequenceService) {
				svc.EXPECT().NextBatch(gomock.Any(), "order", false, 3).Return([]string{"1", "2", "3"}, nil)
			},
			wantStatus: fiber.StatusOK,
			wantKey:    "ids",
		},
		{
			name:       "bad count",
			target:     "/ids/order?count=many",
			setup:      func(svc *mocks.MockSequenceService) {},
			wantStatus: fiber.StatusBadRequest,
			wantKey:    "error",
		},
		{
			name:   "batch too large",
			target: "/ids/order?count=5000",
			setup: func(svc *mocks.MockSequenceService) {
				svc.EXPECT().NextBatch(gomock.Any(), "order", false, 5000).Return(nil, fmt.Errorf("%w: too many", port.ErrInvalidBatchSize))
			},
			wantStatus: fiber.StatusBadRequest,
			wantKey:    "error",
		},
		{
			name:   "config error",
			target: "/ids/unknown",
			setup: func(svc *mocks.MockSequenceService) {
				svc.EXPECT().NextID(gomock.Any(), "unknown", false).Return("", &idgen.ConfigError{Name: "unknown", Reason: "no max value"})
			},
			wantStatus: fiber.StatusBadRequest,
			wantKey:    "error",
		},
		{
			name:   "capacity exhausted",
			target: "/ids/ticket",
			setup: func(svc *mocks.MockSequenceService) {
				svc.EXPECT().NextID(gomock.Any(), "ticket", false).Return("", &idgen.CapacityExhaustedError{Name: "ticket", MaxValue: 10})
			},
			wantStatus: fiber.StatusConflict,
			wantKey:    "error",
		},
		{
			name:   "authority timeout",
			target: "/ids/order",
			setup: func(svc *mocks.MockSequenceService) {
				svc.EXPECT().NextID(gomock.Any(), "order", false).Return("", fmt.Errorf("%w: slow", idgen.ErrAuthorityTimeout))
			},
			wantStatus: fiber.StatusServiceUnavailable,
			wantKey:    "error",
		},
		{
			name:   "unexpected",
			target: "/ids/order",
			setup: func(svc *mocks.MockSequenceService) {
				svc.EXPECT().NextID(gomock.Any(), "order", false).Return("", errors.New("disk on fire"))
			},
			wantStatus: fiber.StatusInternalServerError,
			wantKey:    "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockSequenceService(ctrl)
			tt.setup(svc)

			s := NewServer(config.DefaultConfig(), svc, nil)
			status, body, _ := doGet(t, s, tt.target)

			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, body, tt.wantKey)
		})
	}
}

func TestServer_CircuitOpenSetsRetryAfter(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSequenceService(ctrl)
	svc.EXPECT().NextID(gomock.Any(), "order", true).
		Return("", fmt.Errorf("acquire segment: %w", &resilience.CircuitOpenError{Name: "authority", RetryAfter: 2500 * time.Millisecond}))

	s := NewServer(config.DefaultConfig(), svc, nil)
	status, _, retryAfter := doGet(t, s, "/ids/order/global")

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "3", retryAfter)
}

func TestServer_Health(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockSequenceService(ctrl)
	probe := mocks.NewMockAuthorityProbe(ctrl)

	s := NewServer(config.DefaultConfig(), svc, probe)

	probe.EXPECT().Ping(gomock.Any()).Return(nil)
	status, body, _ := doGet(t, s, "/healthz")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	probe.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	status, _, _ = doGet(t, s, "/healthz")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, 1, retryAfterSeconds(0))
	assert.Equal(t, 1, retryAfterSeconds(200*time.Millisecond))
	assert.Equal(t, 5, retryAfterSeconds(5*time.Second))
}

func newRealServer(t *testing.T, delta int64) (*Server, *idgen.CachingGenerator) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.IDs.DefaultDelta = delta
	gen, err := idgen.NewCachingGenerator(idgen.NewRangePolicy(cfg.IDs), idgen.NewMemoryAuthority(), idgen.CachingOptions{})
	require.NoError(t, err)
	return NewServer(cfg, service.NewSequenceService(cfg, gen), nil), gen
}

func TestServer_ManyNamesStayIndependent(t *testing.T) {
	s, gen := newRealServer(t, 1)

	const names, rounds = 40, 5
	seen := make(map[string]map[string]bool, names)
	for round := 1; round <= rounds; round++ {
		for i := 0; i < names; i++ {
			name := fmt.Sprintf("seq%02d", i)
			status, body, _ := doGet(t, s, "/ids/"+name)
			require.Equal(t, fiber.StatusOK, status, "body: %v", body)
			require.Equal(t, name, body["name"])

			id := body["id"].(string)
			if seen[name] == nil {
				seen[name] = make(map[string]bool)
			}
			require.False(t, seen[name][id], "duplicate id %s for %s", id, name)
			seen[name][id] = true
			assert.Equal(t, fmt.Sprint(round), id)
		}
	}

	stats := gen.Stats()
	require.Len(t, stats, names)
	for i, st := range stats {
		assert.Equal(t, fmt.Sprintf("seq%02d", i), st.Name)
	}
}

func TestServer_UnescapesName(t *testing.T) {
	t.Run("blank after unescaping", func(t *testing.T) {
		s, gen := newRealServer(t, 10)

		status, body, _ := doGet(t, s, "/ids/%20%20")
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, body, "error")
		assert.Empty(t, gen.Stats())
	})

	t.Run("escaped characters reach the service decoded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockSequenceService(ctrl)
		svc.EXPECT().NextID(gomock.Any(), "sales order", false).Return("1", nil)

		s := NewServer(config.DefaultConfig(), svc, nil)
		status, body, _ := doGet(t, s, "/ids/sales%20order")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "sales order", body["name"])
	})
}
