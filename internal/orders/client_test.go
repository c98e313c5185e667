package orders

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	getPayloads map[string]string
	posted      []Order
	postReply   string
}

func (f *fakeCaller) Get(_ context.Context, path string, out any) error {
	return json.Unmarshal([]byte(f.getPayloads[path]), out)
}

func (f *fakeCaller) Post(_ context.Context, _ string, body, out any) error {
	order, ok := body.(Order)
	if !ok {
		return json.Unmarshal([]byte(f.postReply), out)
	}
	f.posted = append(f.posted, order)
	return json.Unmarshal([]byte(f.postReply), out)
}

func TestCreateSendsOrderAndDecodesReply(t *testing.T) {
	gw := &fakeCaller{postReply: `{"id":"order-9","restaurantId":"rest-1","status":"pending","totalAmount":20.97}`}
	client := NewClient(gw)

	created, err := client.Create(context.Background(), Order{
		RestaurantID:  "rest-1",
		Items:         []Line{{MenuItemID: "burger-1", Quantity: 2}},
		Address:       Address{Street: "1 Main St", City: "Springfield", ZipCode: "12345"},
		PaymentMethod: "card",
	})
	require.NoError(t, err)
	require.Len(t, gw.posted, 1)
	assert.Equal(t, "order-9", created.ID)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, "20.97", created.TotalAmount.String())
}

func TestListForUserDecodesHistory(t *testing.T) {
	gw := &fakeCaller{getPayloads: map[string]string{
		"/orders": `[{"id":"order-1"},{"id":"order-2"}]`,
	}}
	client := NewClient(gw)

	list, err := client.ListForUser(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "order-2", list[1].ID)
}

func TestGetByIDEscapesPath(t *testing.T) {
	gw := &fakeCaller{getPayloads: map[string]string{
		"/orders/order-1": `{"id":"order-1","status":"delivered"}`,
	}}
	client := NewClient(gw)

	order, err := client.GetByID(context.Background(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, "delivered", order.Status)
}
