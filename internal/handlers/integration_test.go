package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/executivemachines/rental-api/internal/gateway"
	"github.com/executivemachines/rental-api/internal/models"
	"github.com/executivemachines/rental-api/internal/utils"
)

// setupMongo connects to the database named by MONGO_URI and hands the
// test a throwaway database. Skipped when no store is available.
func setupMongo(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping store-backed tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(3*time.Second))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}

	db := client.Database(fmt.Sprintf("rentalApiTest_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestUserRoundTrip(t *testing.T) {
	db := setupMongo(t)
	r, h := newTestRouter(t, db, &fakeGateway{})

	w := postJSON(r, "/users", map[string]string{"name": "Karim", "email": "karim@x.com", "role": "user"})
	if w.Code != http.StatusOK {
		t.Fatalf("create user: expected 200, got %d", w.Code)
	}
	var created struct {
		Acknowledged bool   `json:"acknowledged"`
		InsertedID   string `json:"insertedId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode insert ack: %v", err)
	}
	if !created.Acknowledged || created.InsertedID == "" {
		t.Fatalf("unexpected insert ack: %+v", created)
	}

	token, err := utils.GenerateJWT([]byte(h.Cfg.JWTSecret), "karim@x.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Created user shows up in the listing.
	req := httptest.NewRequest(http.MethodGet, "/manageUser", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Fatalf("list users: expected 200, got %d", w2.Code)
	}
	var users []models.User
	if err := json.Unmarshal(w2.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	found := false
	for _, u := range users {
		if u.Email == "karim@x.com" {
			found = true
		}
	}
	if !found {
		t.Fatalf("created user missing from listing: %+v", users)
	}

	// Promotion flips the role to admin.
	req = httptest.NewRequest(http.MethodPatch, "/users/"+created.InsertedID, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req)
	if w3.Code != http.StatusOK {
		t.Fatalf("promote: expected 200, got %d", w3.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/users/admin/karim@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w4 := httptest.NewRecorder()
	r.ServeHTTP(w4, req)
	if w4.Code != http.StatusOK {
		t.Fatalf("role lookup: expected 200, got %d", w4.Code)
	}
	var roleBody map[string]string
	json.Unmarshal(w4.Body.Bytes(), &roleBody)
	if roleBody["role"] != "admin" {
		t.Fatalf("expected role admin after promotion, got %q", roleBody["role"])
	}

	// Unknown email is a 404.
	req = httptest.NewRequest(http.MethodGet, "/users/admin/nobody@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w5 := httptest.NewRecorder()
	r.ServeHTTP(w5, req)
	if w5.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown email, got %d", w5.Code)
	}
}

func TestDeleteMissingBookingIsZeroCountSuccess(t *testing.T) {
	db := setupMongo(t)
	r, _ := newTestRouter(t, db, &fakeGateway{})

	req := httptest.NewRequest(http.MethodDelete, "/booking/64b0c0ffee0ddba11ca70b1e", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var ack struct {
		Acknowledged bool  `json:"acknowledged"`
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if !ack.Acknowledged || ack.DeletedCount != 0 {
		t.Fatalf("expected zero-count success, got %+v", ack)
	}
}

func TestPaymentFlowSettlement(t *testing.T) {
	db := setupMongo(t)
	gw := &fakeGateway{resp: &gateway.TransactionResponse{Status: "SUCCESS", GatewayPageURL: "https://sandbox.sslcommerz.com/pay/s1"}}
	r, h := newTestRouter(t, db, gw)

	w := postJSON(r, "/bookings", fullBookingPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("start payment: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["url"] != gw.resp.GatewayPageURL {
		t.Fatalf("expected gateway redirect url, got %q", body["url"])
	}
	if gw.calls != 1 {
		t.Fatalf("expected one gateway call, got %d", gw.calls)
	}

	// Exactly one pending booking keyed by the minted transitionId.
	var booking models.Booking
	if err := db.Collection("booking").FindOne(context.Background(), bson.M{"transitionId": gw.last.TranID}).Decode(&booking); err != nil {
		t.Fatalf("pending booking not persisted: %v", err)
	}
	if booking.Status {
		t.Fatal("booking must start unsettled")
	}
	n, err := db.Collection("booking").CountDocuments(context.Background(), bson.M{"transitionId": gw.last.TranID})
	if err != nil || n != 1 {
		t.Fatalf("expected exactly one booking per transitionId, got %d (%v)", n, err)
	}

	// Callback URLs are derived from config and carry the transitionId.
	wantSuccess := fmt.Sprintf("%s/payment/success?transitionId=%s", h.Cfg.PublicBaseURL, gw.last.TranID)
	if gw.last.SuccessURL != wantSuccess {
		t.Fatalf("success url %q, want %q", gw.last.SuccessURL, wantSuccess)
	}

	// Settlement callback flips the status flag and redirects.
	req := httptest.NewRequest(http.MethodPost, "/payment/success?transitionId="+gw.last.TranID, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusFound {
		t.Fatalf("settlement callback: expected 302, got %d", w2.Code)
	}
	if err := db.Collection("booking").FindOne(context.Background(), bson.M{"transitionId": gw.last.TranID}).Decode(&booking); err != nil {
		t.Fatalf("booking lookup after settlement: %v", err)
	}
	if !booking.Status {
		t.Fatal("settlement callback did not flip status")
	}
}

func TestPaymentFlowFailureCallbackDiscardsBooking(t *testing.T) {
	db := setupMongo(t)
	gw := &fakeGateway{resp: &gateway.TransactionResponse{Status: "SUCCESS", GatewayPageURL: "https://sandbox.sslcommerz.com/pay/s2"}}
	r, _ := newTestRouter(t, db, gw)

	w := postJSON(r, "/bookings", fullBookingPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("start payment: expected 200, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/payment/fail?transitionId="+gw.last.TranID, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusFound {
		t.Fatalf("failure callback: expected 302, got %d", w2.Code)
	}

	n, err := db.Collection("booking").CountDocuments(context.Background(), bson.M{"transitionId": gw.last.TranID})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected booking discarded, found %d", n)
	}
}

func TestPaymentGatewayFailureCompensatesWriteAhead(t *testing.T) {
	db := setupMongo(t)
	gw := &fakeGateway{err: errors.New("gateway unreachable")}
	r, _ := newTestRouter(t, db, gw)

	w := postJSON(r, "/bookings", fullBookingPayload())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 on gateway failure, got %d", w.Code)
	}

	n, err := db.Collection("booking").CountDocuments(context.Background(), bson.M{"email": "a@x.com"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("write-ahead record not compensated, %d bookings remain", n)
	}
}

func TestMissingFieldCreatesNoBooking(t *testing.T) {
	db := setupMongo(t)
	gw := &fakeGateway{}
	r, _ := newTestRouter(t, db, gw)

	payload := fullBookingPayload()
	delete(payload, "email")
	w := postJSON(r, "/bookings", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	n, err := db.Collection("booking").CountDocuments(context.Background(), bson.M{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no bookings, found %d", n)
	}
}

func TestBookingOwnerListing(t *testing.T) {
	db := setupMongo(t)
	r, h := newTestRouter(t, db, &fakeGateway{})

	docs := []interface{}{
		bson.M{"email": "a@x.com", "totalPrice": 100.0, "currency": "BDT", "status": false},
		bson.M{"email": "a@x.com", "totalPrice": 200.0, "currency": "BDT", "status": true},
		bson.M{"email": "b@x.com", "totalPrice": 300.0, "currency": "BDT", "status": false},
	}
	if _, err := db.Collection("booking").InsertMany(context.Background(), docs); err != nil {
		t.Fatalf("seed: %v", err)
	}

	token, err := utils.GenerateJWT([]byte(h.Cfg.JWTSecret), "a@x.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/bookings/user?email=a@x.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var bookings []models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &bookings); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(bookings) != 2 {
		t.Fatalf("expected 2 bookings for a@x.com, got %d", len(bookings))
	}
}
