package property

// Item is a purchasable good. Income-bearing items pay out on the long
// sweep; Prestige feeds into the profile display only.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Income   int    `json:"income,omitempty"`
	Prestige int    `json:"prestige,omitempty"`
}

type Store struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

var stores = []Store{
	{
		ID:   "real_estate",
		Name: "Real estate",
		Items: []Item{
			{ID: "apartment", Name: "City apartment", Price: 5000, Income: 50, Prestige: 5},
			{ID: "house", Name: "Suburban house", Price: 15000, Income: 120, Prestige: 15},
			{ID: "penthouse", Name: "Penthouse", Price: 50000, Income: 400, Prestige: 50},
		},
	},
	{
		ID:   "vehicles",
		Name: "Vehicles",
		Items: []Item{
			{ID: "bicycle", Name: "Bicycle", Price: 300, Prestige: 1},
			{ID: "sedan", Name: "Sedan", Price: 8000, Prestige: 10},
			{ID: "sports_car", Name: "Sports car", Price: 40000, Prestige: 40},
		},
	},
	{
		ID:   "luxury",
		Name: "Luxury goods",
		Items: []Item{
			{ID: "watch", Name: "Gold watch", Price: 2000, Prestige: 8},
			{ID: "yacht", Name: "Yacht", Price: 120000, Income: 0, Prestige: 100},
		},
	},
}

// Stores returns the full shop catalog.
func Stores() []Store {
	return stores
}

// Find resolves a store/item pair. The bool distinguishes a missing item
// from a missing store only through the returned Store value.
func Find(storeID, itemID string) (Store, Item, bool) {
	for _, s := range stores {
		if s.ID != storeID {
			continue
		}
		for _, it := range s.Items {
			if it.ID == itemID {
				return s, it, true
			}
		}
		return s, Item{}, false
	}
	return Store{}, Item{}, false
}
