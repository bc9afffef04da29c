package gqlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/noizee/storefront/internal/listquery"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestClient_DoDecodesData(t *testing.T) {
	var gotAuth string
	var gotBody Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"products":{"count":2,"items":[{"id":"p1"},{"id":"p2"}]}}}`))
	}))
	defer srv.Close()

	c, err := New(Config{Endpoint: srv.URL, Tokens: staticTokens("abc")})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	var out struct {
		Products struct {
			Count int `json:"count"`
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
		} `json:"products"`
	}
	req := Request{Query: "query Products { products { count items { id } } }", OperationName: "Products"}
	if err := c.Do(context.Background(), req, &out); err != nil {
		t.Fatalf("do: %v", err)
	}

	if gotAuth != "Bearer abc" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotBody.OperationName != "Products" {
		t.Fatalf("operation name = %q", gotBody.OperationName)
	}
	if out.Products.Count != 2 || len(out.Products.Items) != 2 {
		t.Fatalf("decoded %+v", out)
	}
}

func TestClient_DoSurfacesGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"errors":[{"message":"product not found","path":["product"],"extensions":{"code":"NOT_FOUND"}}]}`))
	}))
	defer srv.Close()

	c, err := New(Config{Endpoint: srv.URL})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	err = c.Do(context.Background(), Request{Query: "query { product(id:\"x\") { id } }"}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	respErr, ok := err.(*ResponseError)
	if !ok || respErr.Errors[0].Message != "product not found" {
		t.Fatalf("unexpected error shape: %#v", err)
	}
}

func TestClient_DoRejectsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New(Config{Endpoint: srv.URL})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c.Do(context.Background(), Request{Query: "{ ping }"}, nil); err == nil {
		t.Fatalf("expected transport error")
	}
}

func TestClient_NewValidatesEndpoint(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("empty endpoint must be rejected")
	}
	if _, err := New(Config{Endpoint: "ftp://example.com"}); err == nil {
		t.Fatalf("non-http scheme must be rejected")
	}
}

func TestListVariables(t *testing.T) {
	p := listquery.Params{
		Limit:         10,
		Offset:        20,
		SortField:     "name",
		SortDirection: listquery.SortAscending,
		Filters:       listquery.Filters{"status": "approved"},
	}
	vars := ListVariables(p)
	if vars["limit"] != 10 || vars["offset"] != 20 {
		t.Fatalf("limit/offset: %#v", vars)
	}
	sort := vars["sort"].(map[string]interface{})
	if sort["field"] != "name" || sort["direction"] != "ASC" {
		t.Fatalf("sort: %#v", sort)
	}
	filter := vars["filter"].(map[string]interface{})
	if filter["status"] != "approved" {
		t.Fatalf("filter: %#v", filter)
	}

	bare := ListVariables(listquery.Params{Limit: 10})
	if _, ok := bare["sort"]; ok {
		t.Fatalf("empty sort must be omitted")
	}
	if _, ok := bare["filter"]; ok {
		t.Fatalf("empty filter must be omitted")
	}
}
