package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"pedidos/internal/models"
	"pedidos/internal/store"
)

func TestClientCreateListDelete(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewClientHandler(store.NewClientStore(db))

	body := `{"name":"Ana Paula","email":"ana@example.com","phone":"(11) 98888-7777"}`
	req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Client
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 || created.Email == nil || *created.Email != "ana@example.com" {
		t.Fatalf("unexpected client: %+v", created)
	}

	// Search by partial name, the way the list view filters while typing.
	listReq := httptest.NewRequest(http.MethodGet, "/clients?q=ana", nil)
	listW := httptest.NewRecorder()
	h.List(listW, listReq)
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", listW.Code)
	}
	var list struct {
		Items []models.Client `json:"items"`
		Total int64           `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}

	delReq := httptest.NewRequest(http.MethodPost, "/clients/delete?id="+strconv.Itoa(int(created.ID)), nil)
	delW := httptest.NewRecorder()
	h.Delete(delW, delReq)
	if delW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", delW.Code)
	}
	var n int64
	if err := db.Model(&models.Client{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("clients = %d after delete, want 0", n)
	}
}

func TestClientCreateDuplicateEmail(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewClientHandler(store.NewClientStore(db))

	body := `{"name":"Ana Paula","email":"ana@example.com"}`
	for i, wantCode := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.Create(w, req)
		if w.Code != wantCode {
			t.Fatalf("create %d: code = %d, want %d (body=%s)", i, w.Code, wantCode, w.Body.String())
		}
	}
}

func TestClientCreateValidation(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewClientHandler(store.NewClientStore(db))

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"x@example.com"}`},
		{"bad phone", `{"name":"Ana","phone":"12"}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.Create(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: code = %d, want 400", tc.name, w.Code)
		}
	}
}

func TestProductCreateAndSearch(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewProductHandler(store.NewProductStore(db))

	body := `{"name":"Caderno universitário","unit_price":12.90,"stock":30}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	// Duplicate name is a distinct conflict.
	dupW := httptest.NewRecorder()
	dupReq := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	dupReq.Header.Set("Content-Type", "application/json")
	h.Create(dupW, dupReq)
	if dupW.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", dupW.Code)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/products?q=caderno", nil)
	listW := httptest.NewRecorder()
	h.List(listW, listReq)
	var list struct {
		Items []models.Product `json:"items"`
		Total int64            `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Total != 1 || list.Items[0].Stock != 30 {
		t.Fatalf("unexpected list: %+v", list)
	}

	negPrice := `{"name":"Inválido","unit_price":-1,"stock":0}`
	badW := httptest.NewRecorder()
	badReq := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(negPrice))
	badReq.Header.Set("Content-Type", "application/json")
	h.Create(badW, badReq)
	if badW.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", badW.Code)
	}
}
