package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docemarce/internal/api"
	"docemarce/internal/notify"
)

const catalogJSON = `[
	{"productId":"p1","productName":"Brigadeiro","image":"http://x/b.png","price":4.5},
	{"productId":"p2","productName":"Beijinho","image":"http://x/be.png","price":4,"disabled":true}
]`

func TestLoaderRefreshReplacesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Customer call shape carries the email in a POST body.
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "cliente@example.com", body["email"])
		io.WriteString(w, catalogJSON)
	}))
	defer srv.Close()

	l := NewLoader(api.NewClient(api.DefaultEndpoints(srv.URL)), &notify.Recorder{}, "cliente@example.com")
	require.NoError(t, l.Refresh(context.Background()))

	products := l.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "Brigadeiro", products[0].ProductName)
	assert.True(t, products[1].Disabled)

	// Customers only see enabled products.
	available := l.Available()
	require.Len(t, available, 1)
	assert.Equal(t, "p1", available[0].ProductID)
}

func TestLoaderAdminShapeIsBareGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		io.WriteString(w, catalogJSON)
	}))
	defer srv.Close()

	l := NewLoader(api.NewClient(api.DefaultEndpoints(srv.URL)), &notify.Recorder{}, "")
	require.NoError(t, l.Refresh(context.Background()))
	assert.Len(t, l.Products(), 2)
}

func TestLoaderFailureKeepsPreviousSnapshot(t *testing.T) {
	fail := false
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		f := fail
		mu.Unlock()
		if f {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		io.WriteString(w, catalogJSON)
	}))
	defer srv.Close()

	rec := &notify.Recorder{}
	l := NewLoader(api.NewClient(api.DefaultEndpoints(srv.URL)), rec, "")
	require.NoError(t, l.Refresh(context.Background()))

	mu.Lock()
	fail = true
	mu.Unlock()
	require.Error(t, l.Refresh(context.Background()))
	assert.Len(t, l.Products(), 2, "failed refetch must not clear the snapshot")
	assert.Equal(t, []string{"Não foi possível carregar os produtos."}, rec.Errors)
}

func TestManagerCreateValidatesLocally(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	rec := &notify.Recorder{}
	m := NewManager(api.NewClient(api.DefaultEndpoints(srv.URL)), rec)

	err := m.Create(context.Background(), "Brigadeiro", "", "12.50")
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, 0, requests, "blank fields must not reach the network")
	assert.Equal(t, []string{"Preencha todos os campos!"}, rec.Errors)
}

func TestManagerCreateSendsNumericPriceAndRefetches(t *testing.T) {
	var createBody map[string]any
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/createproduct":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&createBody))
			w.WriteHeader(http.StatusCreated)
		case "/getproducts":
			fetches++
			io.WriteString(w, catalogJSON)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	rec := &notify.Recorder{}
	m := NewManager(api.NewClient(api.DefaultEndpoints(srv.URL)), rec)

	require.NoError(t, m.Create(context.Background(), "Brigadeiro", "http://x/img.png", "12.50"))

	assert.Equal(t, "Brigadeiro", createBody["productName"])
	assert.Equal(t, 12.5, createBody["price"], "price travels as a JSON number")
	assert.Equal(t, 1, fetches, "success triggers exactly one full catalog refetch")
	assert.Equal(t, []string{"Produto cadastrado!"}, rec.Successes)
	assert.Len(t, m.Loader.Products(), 2)
}

func TestCreateFormResetsOnSuccessOnly(t *testing.T) {
	fail := true
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/createproduct":
			mu.Lock()
			f := fail
			mu.Unlock()
			if f {
				http.Error(w, "nope", http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusCreated)
		case "/getproducts":
			io.WriteString(w, catalogJSON)
		}
	}))
	defer srv.Close()

	m := NewManager(api.NewClient(api.DefaultEndpoints(srv.URL)), &notify.Recorder{})
	form := &ProductForm{ProductName: "Brigadeiro", Image: "http://x/img.png", Price: "12.50"}

	require.Error(t, m.CreateForm(context.Background(), form))
	assert.Equal(t, "Brigadeiro", form.ProductName, "a rejected form keeps its values for correction")

	mu.Lock()
	fail = false
	mu.Unlock()
	require.NoError(t, m.CreateForm(context.Background(), form))
	assert.Equal(t, &ProductForm{}, form, "success clears the form")
}

func TestManagerEditRefetches(t *testing.T) {
	var editBody map[string]any
	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/updateproduct":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&editBody))
		case "/getproducts":
			fetches++
			io.WriteString(w, catalogJSON)
		}
	}))
	defer srv.Close()

	m := NewManager(api.NewClient(api.DefaultEndpoints(srv.URL)), &notify.Recorder{})
	require.NoError(t, m.Edit(context.Background(), "p1", "Brigadeiro Gourmet", "http://x/g.png", "6.00"))

	assert.Equal(t, "p1", editBody["productId"])
	assert.Equal(t, "Brigadeiro Gourmet", editBody["productName"])
	assert.Equal(t, 6.0, editBody["price"])
	assert.Equal(t, 1, fetches)
}

func TestSetDisabledSendsMinimalPayload(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/updateproduct":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		case "/getproducts":
			io.WriteString(w, catalogJSON)
		}
	}))
	defer srv.Close()

	rec := &notify.Recorder{}
	m := NewManager(api.NewClient(api.DefaultEndpoints(srv.URL)), rec)
	require.NoError(t, m.SetDisabled(context.Background(), "p2", true))

	// Only the ID and the flag: anything more could clobber other fields.
	assert.Equal(t, map[string]any{"productId": "p2", "disabled": true}, raw)
	assert.Equal(t, []string{"Produto desabilitado!"}, rec.Successes)
}
