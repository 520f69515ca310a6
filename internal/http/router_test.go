package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/shop-backend/internal/data/aggregates"
	"github.com/yungbote/shop-backend/internal/data/repos"
	repotest "github.com/yungbote/shop-backend/internal/data/repos/testutil"
	httpH "github.com/yungbote/shop-backend/internal/http/handlers"
	"github.com/yungbote/shop-backend/internal/observability"
	"github.com/yungbote/shop-backend/internal/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := repotest.DB(t)
	log := repotest.Logger(t)
	metrics := observability.New()

	memberRepo := repos.NewMemberRepo(db, log)
	itemRepo := repos.NewItemRepo(db, log)
	orderRepo := repos.NewOrderRepo(db, log)
	base := aggregates.BaseDeps{DB: db, Log: log, Hooks: aggregates.NewObservabilityHooks(metrics)}

	memberSvc := services.NewMemberService(log, memberRepo,
		aggregates.NewMemberAggregate(aggregates.MemberAggregateDeps{Base: base, Members: memberRepo}))
	itemSvc := services.NewItemService(log, itemRepo,
		aggregates.NewStockAggregate(aggregates.StockAggregateDeps{Base: base, Items: itemRepo}))
	orderSvc := services.NewOrderService(log, orderRepo,
		aggregates.NewOrderAggregate(aggregates.OrderAggregateDeps{Base: base, Members: memberRepo, Items: itemRepo, Orders: orderRepo}))
	querySvc := services.NewOrderQueryService(log, orderRepo, metrics)

	return NewRouter(RouterConfig{
		Log:               log,
		Metrics:           metrics,
		MemberHandler:     httpH.NewMemberHandler(memberSvc),
		ItemHandler:       httpH.NewItemHandler(itemSvc),
		OrderHandler:      httpH.NewOrderHandler(orderSvc),
		OrderQueryHandler: httpH.NewOrderQueryHandler(querySvc),
		HealthHandler:     httpH.NewHealthHandler(db),
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status: got=%d want=%d body=%s", rec.Code, want, rec.Body.String())
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, rec, &env)
	return env.Error.Code
}

func TestMemberEndpoints(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/members", map[string]string{"name": "kim", "city": "Seoul", "street": "1", "zipcode": "111"})
	expectStatus(t, rec, http.StatusCreated)
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, rec, &created)

	rec = do(t, r, http.MethodPost, "/api/members", map[string]string{"name": "kim"})
	expectStatus(t, rec, http.StatusConflict)
	if code := errorCode(t, rec); code != "duplicate_member" {
		t.Fatalf("duplicate code: %q", code)
	}

	rec = do(t, r, http.MethodPost, "/api/members", map[string]string{"name": "  "})
	expectStatus(t, rec, http.StatusBadRequest)

	expectStatus(t, do(t, r, http.MethodGet, "/api/members/999", nil), http.StatusNotFound)
	expectStatus(t, do(t, r, http.MethodGet, "/api/members/abc", nil), http.StatusBadRequest)

	rec = do(t, r, http.MethodGet, "/api/members", nil)
	expectStatus(t, rec, http.StatusOK)
	var list struct {
		Members []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		} `json:"members"`
	}
	decode(t, rec, &list)
	if len(list.Members) != 1 || list.Members[0].ID != created.ID || list.Members[0].Name != "kim" {
		t.Fatalf("unexpected members: %+v", list.Members)
	}
}

func TestItemStockEndpoint(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/items", map[string]any{"name": "JPA", "price": 10000, "stock_quantity": 7})
	expectStatus(t, rec, http.StatusCreated)
	var created struct {
		Item struct {
			ID uint `json:"id"`
		} `json:"item"`
	}
	decode(t, rec, &created)
	path := "/api/items/" + jsonNumber(created.Item.ID)

	rec = do(t, r, http.MethodPost, path+"/stock", map[string]int{"delta": -8})
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	if code := errorCode(t, rec); code != "insufficient_stock" {
		t.Fatalf("overdraw code: %q", code)
	}

	rec = do(t, r, http.MethodPost, path+"/stock", map[string]int{"delta": -7})
	expectStatus(t, rec, http.StatusOK)
	rec = do(t, r, http.MethodPost, path+"/stock", map[string]int{"delta": 5})
	expectStatus(t, rec, http.StatusOK)
	var stock struct {
		StockQuantity int `json:"stock_quantity"`
	}
	decode(t, rec, &stock)
	if stock.StockQuantity != 5 {
		t.Fatalf("stock: want=5 got=%d", stock.StockQuantity)
	}

	rec = do(t, r, http.MethodPut, path, map[string]any{"name": "JPA 2nd", "price": 12000, "stock_quantity": 3})
	expectStatus(t, rec, http.StatusOK)

	expectStatus(t, do(t, r, http.MethodPost, "/api/items/999/stock", map[string]int{"delta": 1}), http.StatusNotFound)
	expectStatus(t, do(t, r, http.MethodPost, "/api/items", map[string]any{"name": "bad", "price": -1}), http.StatusBadRequest)
}

func TestOrderFlowAndReadShapes(t *testing.T) {
	r := newTestRouter(t)

	var member struct {
		ID uint `json:"id"`
	}
	rec := do(t, r, http.MethodPost, "/api/members", map[string]string{"name": "userA", "city": "Seoul", "street": "1", "zipcode": "1111"})
	expectStatus(t, rec, http.StatusCreated)
	decode(t, rec, &member)

	var item struct {
		Item struct {
			ID uint `json:"id"`
		} `json:"item"`
	}
	rec = do(t, r, http.MethodPost, "/api/items", map[string]any{"name": "JPA1", "price": 10000, "stock_quantity": 100})
	expectStatus(t, rec, http.StatusCreated)
	decode(t, rec, &item)

	var orderIDs []uint
	for i := 0; i < 2; i++ {
		rec = do(t, r, http.MethodPost, "/api/orders", map[string]any{"member_id": member.ID, "item_id": item.Item.ID, "count": 2})
		expectStatus(t, rec, http.StatusCreated)
		var placed struct {
			OrderID uint `json:"order_id"`
		}
		decode(t, rec, &placed)
		orderIDs = append(orderIDs, placed.OrderID)
	}
	expectStatus(t, do(t, r, http.MethodPost, "/api/orders", map[string]any{"member_id": member.ID, "item_id": item.Item.ID, "count": 0}), http.StatusBadRequest)

	cancelPath := "/api/orders/" + jsonNumber(orderIDs[1]) + "/cancel"
	expectStatus(t, do(t, r, http.MethodPost, cancelPath, nil), http.StatusOK)
	expectStatus(t, do(t, r, http.MethodPost, cancelPath, nil), http.StatusConflict)

	rec = do(t, r, http.MethodGet, "/api/orders?status=cancelled", nil)
	expectStatus(t, rec, http.StatusOK)
	var listed struct {
		Orders []struct {
			ID uint `json:"id"`
		} `json:"orders"`
	}
	decode(t, rec, &listed)
	if len(listed.Orders) != 1 || listed.Orders[0].ID != orderIDs[1] {
		t.Fatalf("status filter: %+v", listed.Orders)
	}
	expectStatus(t, do(t, r, http.MethodGet, "/api/orders?status=SHIPPED", nil), http.StatusBadRequest)

	rec = do(t, r, http.MethodGet, "/api/v1/simple-orders", nil)
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), `"order":`) || !strings.Contains(rec.Body.String(), `"order_lines"`) {
		t.Fatalf("raw shape unexpected: %s", rec.Body.String())
	}

	var v2, v3 []map[string]any
	rec = do(t, r, http.MethodGet, "/api/v2/simple-orders", nil)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &v2)
	rec = do(t, r, http.MethodGet, "/api/v3/simple-orders", nil)
	expectStatus(t, rec, http.StatusOK)
	decode(t, rec, &v3)
	if len(v2) != 2 || !reflect.DeepEqual(v2, v3) {
		t.Fatalf("v2 and v3 differ:\nv2=%v\nv3=%v", v2, v3)
	}
	for _, key := range []string{"order_id", "member_name", "order_date", "order_status", "delivery_address"} {
		if _, ok := v3[0][key]; !ok {
			t.Fatalf("dto missing %q: %v", key, v3[0])
		}
	}
	if v3[0]["member_name"] != "userA" || v3[1]["order_status"] != "CANCELLED" {
		t.Fatalf("dto values: %v", v3)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)
	rec := do(t, r, http.MethodGet, "/healthcheck", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "ok" {
		t.Fatalf("health body: %q", rec.Body.String())
	}

	do(t, r, http.MethodGet, "/api/v3/simple-orders", nil)
	rec = do(t, r, http.MethodGet, "/metrics", nil)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), `route="/api/v3/simple-orders"`) {
		t.Fatalf("metrics missing api counter:\n%s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `route="/healthcheck"`) {
		t.Fatalf("health probes should not be recorded:\n%s", rec.Body.String())
	}
}

func jsonNumber(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
