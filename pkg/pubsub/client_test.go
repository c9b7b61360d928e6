package pubsub

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
)

func TestResourceName(t *testing.T) {
	cases := []struct {
		project, name, want string
	}{
		{"proj", "storefront-orders", "projects/proj/topics/storefront-orders"},
		{"proj", "projects/other/topics/basket", "projects/other/topics/basket"},
		{"proj", "  ", ""},
		{"", "orders", ""},
	}
	for _, tc := range cases {
		if got := resourceName(tc.project, "topics", tc.name); got != tc.want {
			t.Fatalf("resourceName(%q, %q) = %q, want %q", tc.project, tc.name, got, tc.want)
		}
	}
}

func TestTopicNamesSkipsBlank(t *testing.T) {
	got := topicNames(config.PubSubConfig{OrdersTopic: "orders", BasketTopic: " "})
	if len(got) != 1 || got[0] != "orders" {
		t.Fatalf("unexpected topics %v", got)
	}
}

func TestNilClientIsSafe(t *testing.T) {
	var c *Client
	if c.Publisher("orders") != nil {
		t.Fatal("expected nil publisher from nil client")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error from nil client")
	}
}
