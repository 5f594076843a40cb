package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"silant-servicebook-web/config"
	"silant-servicebook-web/internal/model"
	"silant-servicebook-web/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger, _ := test.NewNullLogger()
	opts = append([]Option{WithLogger(logger)}, opts...)
	c, err := New(config.APIConfig{BaseURL: server.URL + "/api/"}, opts...)
	require.NoError(t, err)
	return c, server
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	_, err := New(config.APIConfig{BaseURL: "/api/"})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/token/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["username"] == "service1" && body["password"] == "secret" {
			w.Write([]byte(`{"token":"abc123"}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"non_field_errors":["Unable to log in with provided credentials."]}`))
	})

	token, err := c.Login(context.Background(), "service1", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	_, err = c.Login(context.Background(), "service1", "wrong")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Unable to log in with provided credentials.", ve.Message())
}

func TestListMachines_SendsQueryAndToken(t *testing.T) {
	var gotQuery url.Values
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/machines/", r.URL.Path)
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"count":2,"next":"http://example/api/machines/?cursor=x","previous":null,"results":[{"id":1,"serial_number":"0017"},{"id":2,"serial_number":"0018"}]}`))
	})

	query := url.Values{
		"technique_model__name__icontains": {"ПД1,5"},
		"engine_model__name__icontains":    {""},
		"ordering":                         {"-serial_number"},
	}
	page, err := c.WithCredentials(session.Credentials{Token: "abc123", Username: "service1"}).ListMachines(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, query, gotQuery)
	assert.Equal(t, "Token abc123", gotAuth)
	assert.Equal(t, 2, page.Count)
	assert.Len(t, page.Results, 2)
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrevious())
}

func TestWithCredentials_DoesNotMutateParent(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"count":0,"results":[]}`))
	})

	bound := c.WithCredentials(session.Credentials{Token: "abc123"})
	assert.Equal(t, "abc123", bound.Credentials().Token)

	_, err := c.ListMachines(context.Background(), url.Values{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestFollowMachines(t *testing.T) {
	var gotURL string
	c, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.String()
		w.Write([]byte(`{"count":3,"next":null,"previous":"p","results":[{"id":3}]}`))
	})

	locator := server.URL + "/api/machines/?cursor=cD0y&ordering=shipment_date"
	page, err := c.FollowMachines(context.Background(), locator)
	require.NoError(t, err)
	assert.Equal(t, "/api/machines/?cursor=cD0y&ordering=shipment_date", gotURL)
	assert.Len(t, page.Results, 1)
	assert.False(t, page.HasNext())
}

func TestFollowMachines_RejectsForeignHost(t *testing.T) {
	called := false
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := c.WithCredentials(session.Credentials{Token: "abc123"}).FollowMachines(context.Background(), "http://evil.example/api/machines/?cursor=x")
	assert.ErrorIs(t, err, ErrForeignLocator)
	assert.False(t, called)
}

func TestSearchMachine(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/machines/search/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		if r.URL.Query().Get("serial_number") == "0017" {
			w.Write([]byte(`{"id":1,"serial_number":"0017","technique_model":"ПД1,5"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Машина не найдена"}`))
	})
	bound := c.WithCredentials(session.Credentials{Token: "abc123"})

	m, err := bound.SearchMachine(context.Background(), "0017")
	require.NoError(t, err)
	assert.Equal(t, "ПД1,5", m.TechniqueModel)

	_, err = bound.SearchMachine(context.Background(), "SN-12345")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMachine_Forbidden(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/machines/7/", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"You do not have permission to perform this action."}`))
	})

	_, err := c.GetMachine(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUnauthorized)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, http.StatusForbidden, ve.Code)
	assert.False(t, ve.Rejected())
	assert.Equal(t, "You do not have permission to perform this action.", ve.Message())
}

func TestNew_InvalidProxyWarnsThroughLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()

	c, err := New(config.APIConfig{BaseURL: "http://127.0.0.1:8000/api/", HTTPProxy: "://proxy"}, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, http.DefaultTransport, c.http.Transport)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "invalid proxy URL")
}

func TestNew_MetricsWrapProxyTransport(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	c, err := New(config.APIConfig{BaseURL: "http://127.0.0.1:8000/api/", HTTPProxy: "http://proxy.local:3128"}, WithMetrics(m))
	require.NoError(t, err)
	_, plain := c.http.Transport.(*http.Transport)
	assert.False(t, plain)

	bare, err := New(config.APIConfig{BaseURL: "http://127.0.0.1:8000/api/", HTTPProxy: "http://proxy.local:3128"})
	require.NoError(t, err)
	transport, ok := bare.http.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, transport.Proxy)
	proxyURL, err := transport.Proxy(httptest.NewRequest(http.MethodGet, "http://127.0.0.1:8000/api/machines/", nil))
	require.NoError(t, err)
	assert.Equal(t, "proxy.local:3128", proxyURL.Host)
}

func TestCreateMaintenance_ForbiddenCarriesDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"У вас недостаточно прав для выполнения данного действия."}`))
	})

	_, err := c.CreateMaintenance(context.Background(), model.MaintenanceInput{Machine: "0017"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "У вас недостаточно прав для выполнения данного действия.", ve.Message())
}

func TestRecordLists_AcceptBothShapes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0017", r.URL.Query().Get("machine__serial_number"))
		switch r.URL.Path {
		case "/api/maintenances/":
			w.Write([]byte(`[{"id":1,"service_type":"ТО-1","operating_hours":120}]`))
		case "/api/complaints/":
			w.Write([]byte(`{"count":1,"next":null,"previous":null,"results":[{"id":5,"failure_node":"Двигатель","downtime":3}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	maintenances, err := c.ListMaintenances(context.Background(), "0017")
	require.NoError(t, err)
	require.Len(t, maintenances, 1)
	assert.Equal(t, 120, maintenances[0].OperatingHours)

	complaints, err := c.ListComplaints(context.Background(), "0017")
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, 3, complaints[0].Downtime)
}

func TestCatalogs(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/service_types/":
			w.Write([]byte(`{"results":[{"id":1,"name":"ТО-1"},{"id":2,"name":"ТО-2"}]}`))
		case "/api/failure_nodes/":
			w.Write([]byte(`[{"id":1,"name":"Двигатель"}]`))
		case "/api/recovery_methods/":
			w.Write([]byte(`[]`))
		}
	})
	ctx := context.Background()

	types, err := c.ServiceTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ТО-1", types[0].Name)

	nodes, err := c.FailureNodes(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, 1)

	methods, err := c.RecoveryMethods(ctx)
	require.NoError(t, err)
	assert.NotNil(t, methods)
	assert.Empty(t, methods)
}

func TestCreateMaintenance(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/maintenances/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Token abc123", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
			"machine":"0017","service_type":"ТО-1","event_date":"2024-05-01","operating_hours":"120",
			"order_number":"42","order_date":"2024-04-30","service_company":"service1"
		}`, string(body))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":9,"machine":"0017","service_type":"ТО-1","operating_hours":120}`))
	})

	created, err := c.WithCredentials(session.Credentials{Token: "abc123"}).CreateMaintenance(context.Background(), model.MaintenanceInput{
		Machine:        "0017",
		ServiceType:    "ТО-1",
		EventDate:      "2024-05-01",
		OperatingHours: "120",
		OrderNumber:    "42",
		OrderDate:      "2024-04-30",
		ServiceCompany: "service1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
}

func TestCreateComplaint_Validation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"restoration_date":["Дата восстановления не может быть раньше даты отказа"],"failure_date":["Обязательное поле."]}`))
	})

	_, err := c.CreateComplaint(context.Background(), model.ComplaintInput{Machine: "0017"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Обязательное поле.. Дата восстановления не может быть раньше даты отказа", ve.Message())
	assert.Len(t, ve.Fields, 2)
	assert.Equal(t, "failure_date", ve.Fields[0].Field)
}

func TestServerErrorIsStatusError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer server.Close()

	c, err := New(config.APIConfig{BaseURL: server.URL + "/api/"}, WithLogger(logger))
	require.NoError(t, err)

	_, err = c.GetMachine(context.Background(), 1)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.False(t, errors.Is(err, ErrNotFound))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 500, hook.LastEntry().Data["status"])
}

func TestStaticHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ru", r.Header.Get("Accept-Language"))
		w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	c, err := New(config.APIConfig{BaseURL: server.URL + "/api/", Headers: map[string]string{"Accept-Language": "ru"}})
	require.NoError(t, err)
	_, err = c.GetMachine(context.Background(), 1)
	require.NoError(t, err)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1}`))
	}, WithMetrics(metrics))

	_, err := c.GetMachine(context.Background(), 1)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != "servicebook_upstream_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, total)
}
