package rules

import (
	"testing"

	"github.com/DedS3t/monopoly-server/app/models"
)

func owned(owner string, ids ...int) []models.Property {
	var out []models.Property
	for _, id := range ids {
		out = append(out, models.Property{SpaceId: id, OwnerId: owner})
	}
	return out
}

func TestStreetRent(t *testing.T) {
	cases := []struct {
		name  string
		prop  models.Property
		owned []models.Property
		want  int
	}{
		{"base", models.Property{SpaceId: 1, OwnerId: "a"}, owned("a", 1), 2},
		{"monopoly doubles unimproved", models.Property{SpaceId: 1, OwnerId: "a"}, owned("a", 1, 3), 4},
		{"one house", models.Property{SpaceId: 1, OwnerId: "a", Houses: 1}, owned("a", 1, 3), 10},
		{"hotel", models.Property{SpaceId: 1, OwnerId: "a", Houses: 5}, owned("a", 1, 3), 250},
		{"mortgaged", models.Property{SpaceId: 1, OwnerId: "a", Mortgaged: true}, owned("a", 1, 3), 0},
		{"boardwalk monopoly", models.Property{SpaceId: 39, OwnerId: "a"}, owned("a", 37, 39), 100},
	}
	for _, c := range cases {
		if got := RentOwed(c.prop, c.owned, 7); got != c.want {
			t.Fatalf("%s: rent = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestRailroadRent(t *testing.T) {
	rails := []int{5, 15, 25, 35}
	want := []int{25, 50, 100, 200}
	for n := 1; n <= 4; n++ {
		got := RentOwed(models.Property{SpaceId: 5, OwnerId: "a"}, owned("a", rails[:n]...), 0)
		if got != want[n-1] {
			t.Fatalf("%d railroads: rent = %d, want %d", n, got, want[n-1])
		}
	}
}

func TestUtilityRent(t *testing.T) {
	if got := RentOwed(models.Property{SpaceId: 12, OwnerId: "a"}, owned("a", 12), 8); got != 32 {
		t.Fatalf("one utility: rent = %d, want 32", got)
	}
	if got := RentOwed(models.Property{SpaceId: 28, OwnerId: "a"}, owned("a", 12, 28), 8); got != 80 {
		t.Fatalf("both utilities: rent = %d, want 80", got)
	}
}
