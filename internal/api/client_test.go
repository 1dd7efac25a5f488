package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mateorivas/brewcart/internal/cart"
	"github.com/mateorivas/brewcart/pkg/enums"
	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) Token(context.Context) (string, error) {
	return string(s), nil
}

func newFakeService(t *testing.T, register func(r chi.Router)) *Client {
	t.Helper()
	r := chi.NewRouter()
	r.Route("/api", register)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, WithTokenSource(staticTokens("tok-123")))
	require.NoError(t, err)
	return client
}

func TestCheckoutSubmitsPayloadWithAuth(t *testing.T) {
	var captured CheckoutRequest
	var authHeader, requestID string

	client := newFakeService(t, func(r chi.Router) {
		r.Post("/checkout", func(w http.ResponseWriter, req *http.Request) {
			authHeader = req.Header.Get("Authorization")
			requestID = req.Header.Get("X-Request-ID")
			require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
			_ = json.NewEncoder(w).Encode(CheckoutResponse{
				Message: "Order placed successfully",
				Order:   Order{OrderID: "ord-1", UserID: captured.UserID, Status: "Pending"},
			})
		})
	})

	resp, err := client.Checkout(context.Background(), CheckoutRequest{
		UserID: "u1",
		Items:  []cart.CheckoutItem{{ProductID: "p1", Quantity: 2, Name: "Latte", Price: 80}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", authHeader)
	assert.NotEmpty(t, requestID)
	assert.Equal(t, "u1", captured.UserID)
	require.Len(t, captured.Items, 1)
	assert.Equal(t, 2, captured.Items[0].Quantity)
	assert.Equal(t, "ord-1", resp.Order.OrderID)
}

func TestCheckoutSubmitsEmptyItems(t *testing.T) {
	var rawBody map[string]json.RawMessage

	client := newFakeService(t, func(r chi.Router) {
		r.Post("/checkout", func(w http.ResponseWriter, req *http.Request) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&rawBody))
			_ = json.NewEncoder(w).Encode(CheckoutResponse{Message: "ok"})
		})
	})

	_, err := client.Checkout(context.Background(), CheckoutRequest{UserID: "u1"})
	require.NoError(t, err)

	// the wire payload carries items: [] rather than omitting the field
	assert.JSONEq(t, `[]`, string(rawBody["items"]))
}

func TestCheckoutSurfacesServerDetail(t *testing.T) {
	client := newFakeService(t, func(r chi.Router) {
		r.Post("/checkout", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Cart is empty"})
		})
	})

	_, err := client.Checkout(context.Background(), CheckoutRequest{UserID: "u1"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "/checkout")
}

func TestCheckoutRequiresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server without a token")
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, WithTokenSource(staticTokens("")))
	require.NoError(t, err)

	_, err = client.Checkout(context.Background(), CheckoutRequest{UserID: "u1"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestNetworkFailureIsDependencyError(t *testing.T) {
	client, err := NewClient("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = client.ListProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.CodeOf(err))
}

func TestListProducts(t *testing.T) {
	client := newFakeService(t, func(r chi.Router) {
		r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[{"product_id":"p1","name":"Latte","price":100,"discount_price":80}]`))
		})
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Latte", products[0].Name)
	require.NotNil(t, products[0].DiscountPrice)
	assert.Equal(t, 80.0, *products[0].DiscountPrice)
}

func TestListProductsRejectsNonList(t *testing.T) {
	client := newFakeService(t, func(r chi.Router) {
		r.Get("/products", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`{"error":"unexpected shape"}`))
		})
	})

	_, err := client.ListProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDecode, pkgerrors.CodeOf(err))
}

func TestProductTypes(t *testing.T) {
	client := newFakeService(t, func(r chi.Router) {
		r.Get("/product-types", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`{"types":["espresso","tea"]}`))
		})
	})

	kinds, err := client.ProductTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"espresso", "tea"}, kinds)
}

func TestAddProductValidatesBeforeSending(t *testing.T) {
	client := newFakeService(t, func(r chi.Router) {
		r.Post("/add-product", func(w http.ResponseWriter, req *http.Request) {
			t.Error("invalid payload must not be submitted")
		})
	})

	_, err := client.AddProduct(context.Background(), AddProductRequest{Name: "Latte"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestOrderHistoryEscapesUserID(t *testing.T) {
	var gotPath string
	client := newFakeService(t, func(r chi.Router) {
		r.Get("/order-history/{userID}", func(w http.ResponseWriter, req *http.Request) {
			gotPath = req.URL.Path
			_, _ = w.Write([]byte(`[{"order_id":"o1","total_amount":12.5,"status":"Pending"}]`))
		})
	})

	history, err := client.OrderHistory(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "/api/order-history/u1", gotPath)
	assert.True(t, enums.OrderStatusPending.Is(history[0].Status))
}

func TestAdminOrderLifecycle(t *testing.T) {
	client := newFakeService(t, func(r chi.Router) {
		r.Get("/admin/orders", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[{"_id":"o1","user":{"name":"Maya"},"total":25,"status":"Pending","items":[]}]`))
		})
		r.Put("/admin/mark-completed/{orderID}", func(w http.ResponseWriter, req *http.Request) {
			_ = json.NewEncoder(w).Encode(MessageResponse{Message: "Order marked as completed"})
		})
		r.Put("/admin/cancel-order/{orderID}", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Order not found"})
		})
	})

	ctx := context.Background()

	orders, err := client.AdminOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Maya", orders[0].User.Name)

	resp, err := client.MarkOrderCompleted(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Order marked as completed", resp.Message)

	_, err = client.CancelOrder(ctx, "o9")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestAdminStatsAndPopularProducts(t *testing.T) {
	client := newFakeService(t, func(r chi.Router) {
		r.Get("/admin/stats", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`{"totalOrders":12,"revenue":340.5,"pendingOrders":3,"completedOrders":8}`))
		})
		r.Get("/admin/products", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[{"_id":"p1","name":"Latte","timesOrdered":40,"totalRevenue":200}]`))
		})
	})

	ctx := context.Background()

	stats, err := client.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalOrders)
	assert.Equal(t, 340.5, stats.Revenue)

	popular, err := client.PopularProducts(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 1)
	assert.Equal(t, 40, popular[0].TimesOrdered)
}

func TestContactLifecycle(t *testing.T) {
	var gotStatus string
	client := newFakeService(t, func(r chi.Router) {
		r.Post("/contact", func(w http.ResponseWriter, req *http.Request) {
			_ = json.NewEncoder(w).Encode(ContactSubmitResponse{Message: "ok", ContactID: "c1"})
		})
		r.Get("/admin/contacts", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(`[{"contact_id":"c1","name":"Maya","email":"maya@example.com","message":"hi","status":"unread"}]`))
		})
		r.Put("/admin/contacts/{contactID}/status", func(w http.ResponseWriter, req *http.Request) {
			gotStatus = req.URL.Query().Get("status")
			_ = json.NewEncoder(w).Encode(MessageResponse{Message: "updated"})
		})
		r.Delete("/admin/contacts/{contactID}", func(w http.ResponseWriter, req *http.Request) {
			_ = json.NewEncoder(w).Encode(MessageResponse{Message: "deleted"})
		})
	})

	ctx := context.Background()

	submitted, err := client.SubmitContact(ctx, ContactRequest{Name: "Maya", Email: "maya@example.com", Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "c1", submitted.ContactID)

	contacts, err := client.Contacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, enums.ContactStatusUnread, contacts[0].Status)

	_, err = client.UpdateContactStatus(ctx, "c1", enums.ContactStatusRead)
	require.NoError(t, err)
	assert.Equal(t, "read", gotStatus)

	_, err = client.UpdateContactStatus(ctx, "c1", enums.ContactStatus("archived"))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	_, err = client.DeleteContact(ctx, "c1")
	require.NoError(t, err)
}

func TestChatRequiresMessageOrMood(t *testing.T) {
	client := newFakeService(t, func(r chi.Router) {
		r.Post("/chatbot", func(w http.ResponseWriter, req *http.Request) {
			var body ChatbotRequest
			require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
			_ = json.NewEncoder(w).Encode(ChatbotResponse{Suggestion: "A calming chamomile for " + body.Mood})
		})
	})

	ctx := context.Background()

	_, err := client.Chat(ctx, ChatbotRequest{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	resp, err := client.Chat(ctx, ChatbotRequest{Mood: "tired"})
	require.NoError(t, err)
	assert.Contains(t, resp.Suggestion, "tired")
}
