package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	refdomain "github.com/rackworks/catalog/internal/reference/domain"
	tadomain "github.com/rackworks/catalog/internal/templateattr/domain"
	"github.com/rackworks/catalog/internal/viewpref"
)

type fakeAttributeService struct {
	createErr error
	lastKey   string
}

func (f *fakeAttributeService) Create(ctx context.Context, req attrdomain.CreateRequest) (*attrdomain.Response, error) {
	_ = ctx
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastKey = req.Key
	return &attrdomain.Response{ID: "1", Key: req.Key, DisplayName: req.DisplayName, DataType: req.DataType}, nil
}

func (f *fakeAttributeService) List(ctx context.Context, req attrdomain.ListRequest) (*attrdomain.ListResult, error) {
	_ = ctx
	_ = req
	return &attrdomain.ListResult{}, nil
}

func (f *fakeAttributeService) Get(ctx context.Context, id string) (*attrdomain.Response, error) {
	_ = ctx
	if id == "404" {
		return nil, attrdomain.ErrNotFound
	}
	return &attrdomain.Response{ID: id}, nil
}

func (f *fakeAttributeService) Update(ctx context.Context, req attrdomain.UpdateRequest) (*attrdomain.Response, error) {
	_ = ctx
	return &attrdomain.Response{ID: req.ID}, nil
}

func (f *fakeAttributeService) Archive(ctx context.Context, id string) (*attrdomain.Response, error) {
	_ = ctx
	return &attrdomain.Response{ID: id, Active: false}, nil
}

type fakeTemplateAttrService struct {
	reconcileErr error
	lastBindings []tadomain.BindingInput
}

func (f *fakeTemplateAttrService) List(ctx context.Context, templateID string) ([]tadomain.Response, error) {
	_ = ctx
	_ = templateID
	return nil, nil
}

func (f *fakeTemplateAttrService) Reconcile(ctx context.Context, templateID string, req tadomain.ReconcileRequest) ([]tadomain.Response, error) {
	_ = ctx
	_ = templateID
	if f.reconcileErr != nil {
		return nil, f.reconcileErr
	}
	f.lastBindings = req.Bindings
	return []tadomain.Response{}, nil
}

type fakeProductService struct {
	lastList proddomain.ListRequest
}

func (f *fakeProductService) Create(ctx context.Context, req proddomain.CreateRequest) (*proddomain.Response, error) {
	_ = ctx
	return &proddomain.Response{ID: "1", Name: req.Name}, nil
}

func (f *fakeProductService) List(ctx context.Context, req proddomain.ListRequest) (*proddomain.ListResponse, error) {
	_ = ctx
	f.lastList = req
	return &proddomain.ListResponse{}, nil
}

func (f *fakeProductService) Get(ctx context.Context, id string) (*proddomain.Response, error) {
	_ = ctx
	return &proddomain.Response{ID: id}, nil
}

func (f *fakeProductService) Update(ctx context.Context, req proddomain.UpdateRequest) (*proddomain.Response, error) {
	_ = ctx
	return &proddomain.Response{ID: req.ID}, nil
}

func (f *fakeProductService) Archive(ctx context.Context, id string) (*proddomain.Response, error) {
	_ = ctx
	return &proddomain.Response{ID: id}, nil
}

type fakeReferenceService struct{}

func (f *fakeReferenceService) Scopes(ctx context.Context) ([]refdomain.Scope, error) {
	_ = ctx
	return []refdomain.Scope{{ID: 1, Name: "public"}}, nil
}

func (f *fakeReferenceService) Services(ctx context.Context) ([]refdomain.Service, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeReferenceService) ServiceTypes(ctx context.Context) ([]refdomain.ServiceType, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeReferenceService) Regions(ctx context.Context) ([]refdomain.Region, error) {
	_ = ctx
	return nil, nil
}

func (f *fakeReferenceService) EnumValues(ctx context.Context, enumType string) ([]string, error) {
	_ = ctx
	if enumType != "disk_types" {
		return nil, refdomain.ErrUnknownEnumType
	}
	return []string{"ssd", "hdd"}, nil
}

type fakeViewPrefService struct {
	prefs map[string]viewpref.ViewPreferences
}

func newFakeViewPrefService() *fakeViewPrefService {
	return &fakeViewPrefService{prefs: map[string]viewpref.ViewPreferences{}}
}

func (f *fakeViewPrefService) Get(ctx context.Context, feature string) (viewpref.ViewPreferences, error) {
	_ = ctx
	return f.prefs[feature], nil
}

func (f *fakeViewPrefService) SetColumnOrder(ctx context.Context, feature string, columns []string) error {
	_ = ctx
	p := f.prefs[feature]
	p.ColumnOrder = columns
	f.prefs[feature] = p
	return nil
}

func (f *fakeViewPrefService) SetHiddenColumns(ctx context.Context, feature string, columns []string) error {
	_ = ctx
	p := f.prefs[feature]
	p.HiddenColumns = columns
	f.prefs[feature] = p
	return nil
}

func newTestRouter(srv *Server, register func(*gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	register(router)
	return router
}

func TestCreateAttributeHandler(t *testing.T) {
	attrSvc := &fakeAttributeService{}
	srv := &Server{attributeSvc: attrSvc}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.POST("/api/attributes", srv.CreateAttribute)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/attributes", bytes.NewBufferString(`{"key":"cpu_cores","display_name":"CPU Cores","data_type":"integer"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if attrSvc.lastKey != "cpu_cores" {
		t.Fatalf("expected service to receive key cpu_cores, got %q", attrSvc.lastKey)
	}
}

func TestCreateAttributeHandlerValidationError(t *testing.T) {
	srv := &Server{attributeSvc: &fakeAttributeService{createErr: attrdomain.ErrInvalidKey}}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.POST("/api/attributes", srv.CreateAttribute)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/attributes", bytes.NewBufferString(`{"key":"Bad Key","display_name":"x","data_type":"string"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}

	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Error.Type != "validation_error" {
		t.Fatalf("expected error type validation_error, got %q", body.Error.Type)
	}
}

func TestCreateAttributeHandlerConflict(t *testing.T) {
	srv := &Server{attributeSvc: &fakeAttributeService{createErr: attrdomain.ErrDuplicateKey}}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.POST("/api/attributes", srv.CreateAttribute)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/attributes", bytes.NewBufferString(`{"key":"cpu_cores","display_name":"x","data_type":"integer"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestGetAttributeHandlerNotFound(t *testing.T) {
	srv := &Server{attributeSvc: &fakeAttributeService{}}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.GET("/api/attributes/:id", srv.GetAttribute)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/attributes/404", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestReconcileTemplateAttributesHandler(t *testing.T) {
	taSvc := &fakeTemplateAttrService{}
	srv := &Server{templateAttrSvc: taSvc}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.PUT("/api/templates/:id/attributes", srv.ReconcileTemplateAttributes)
	})

	body := `{"bindings":[{"attribute_definition_id":"7","is_required":true}]}`
	req := httptest.NewRequest(http.MethodPut, "/api/templates/1/attributes", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(taSvc.lastBindings) != 1 || taSvc.lastBindings[0].AttributeDefinitionID != "7" {
		t.Fatalf("unexpected bindings passed to service: %+v", taSvc.lastBindings)
	}
	if !taSvc.lastBindings[0].Required {
		t.Fatal("expected binding to be required")
	}
}

func TestReconcileTemplateAttributesHandlerUnknownTemplate(t *testing.T) {
	srv := &Server{templateAttrSvc: &fakeTemplateAttrService{reconcileErr: tadomain.ErrTemplateNotFound}}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.PUT("/api/templates/:id/attributes", srv.ReconcileTemplateAttributes)
	})

	req := httptest.NewRequest(http.MethodPut, "/api/templates/999/attributes", bytes.NewBufferString(`{"bindings":[]}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestListProductsHandlerParsesFilterParams(t *testing.T) {
	prodSvc := &fakeProductService{}
	srv := &Server{productSvc: prodSvc}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.GET("/api/products", srv.ListProducts)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products?template_id=5&filter[prop_region]=2&filter[attr_7]=ssd", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if prodSvc.lastList.TemplateID != "5" {
		t.Fatalf("expected template id 5, got %q", prodSvc.lastList.TemplateID)
	}
	if got := prodSvc.lastList.Filters["prop_region"]; got != "2" {
		t.Fatalf("expected prop_region filter 2, got %q", got)
	}
	if got := prodSvc.lastList.Filters["attr_7"]; got != "ssd" {
		t.Fatalf("expected attr_7 filter ssd, got %q", got)
	}
}

func TestListProductsHandlerInvalidActive(t *testing.T) {
	srv := &Server{productSvc: &fakeProductService{}}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.GET("/api/products", srv.ListProducts)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/products?active=maybe", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestGetEnumValuesHandlerUnknownType(t *testing.T) {
	srv := &Server{referenceSvc: &fakeReferenceService{}}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.GET("/api/reference/enums/:type", srv.GetEnumValues)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reference/enums/volume_kinds", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestSetViewPreferencesHandler(t *testing.T) {
	prefSvc := newFakeViewPrefService()
	srv := &Server{viewPrefSvc: prefSvc}
	router := newTestRouter(srv, func(r *gin.Engine) {
		r.PUT("/api/view-preferences/:feature", srv.SetViewPreferences)
		r.GET("/api/view-preferences/:feature", srv.GetViewPreferences)
	})

	body := `{"column_order":["name","region"],"hidden_columns":["image"]}`
	req := httptest.NewRequest(http.MethodPut, "/api/view-preferences/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/view-preferences/products", nil)
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, getReq)

	var out struct {
		Data viewpref.ViewPreferences `json:"data"`
	}
	if err := json.Unmarshal(getResp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Data.ColumnOrder) != 2 || out.Data.ColumnOrder[0] != "name" {
		t.Fatalf("unexpected column order: %+v", out.Data.ColumnOrder)
	}
	if len(out.Data.HiddenColumns) != 1 || out.Data.HiddenColumns[0] != "image" {
		t.Fatalf("unexpected hidden columns: %+v", out.Data.HiddenColumns)
	}
}
