package config

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/papagsgrill/pos-app/models"
	"github.com/papagsgrill/pos-app/utils"
)

// SeedStaff creates the first admin account from the environment.
// Skipped silently when the env vars are absent or the account exists.
func SeedStaff(db *gorm.DB) error {
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		utils.InfoLogger.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "Admin",
		Email:    email,
		Password: string(hash),
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

type seedOption struct {
	Label string
	Price float64
}

type seedItem struct {
	Code        string
	Name        string
	Description string
	Badges      string
	BasePrice   *float64
	Options     []seedOption
}

type seedCategory struct {
	Slug  string
	Name  string
	Icon  string
	Items []seedItem
}

func price(v float64) *float64 { return &v }

// catalog is the house menu. Items have either a base price or an option
// list, never both.
var catalog = []seedCategory{
	{
		Slug: "grilled", Name: "Grilled Meat", Icon: "🥩",
		Items: []seedItem{
			{Code: "G1", Name: "Hungarian", Options: []seedOption{
				{"Plain", 95}, {"With Rice", 115}, {"With Small Fries", 175}, {"With Medium Fries", 225},
			}},
			{Code: "G2", Name: "Chicken", Options: []seedOption{
				{"Plain", 150}, {"With Rice", 170}, {"With Small Fries", 230}, {"With Medium Fries", 280},
			}},
			{Code: "G3", Name: "Pork Chop", Options: []seedOption{
				{"Plain", 150}, {"With Rice", 170}, {"With Small Fries", 230}, {"With Medium Fries", 280},
			}},
			{Code: "G4", Name: "Liempo", Options: []seedOption{
				{"Plain", 180}, {"With Rice", 200}, {"With Small Fries", 260}, {"With Medium Fries", 310},
			}},
		},
	},
	{
		Slug: "bestsellers", Name: "Best Sellers", Icon: "⭐",
		Items: []seedItem{
			{Code: "S1", Name: "Pork Bopis", Description: "Minced pork lung & heart cooked with onions, garlic & chili peppers.", BasePrice: price(220)},
			{Code: "S2", Name: "Chicken Feet", Description: "Fried, boiled, steamed & seasoned with authentic Chinese spices.", BasePrice: price(230)},
			{Code: "S3", Name: "Pork Dinuguan", Description: "Savory stew of pork meat and pig's blood with mild spicy-sour taste.", BasePrice: price(220)},
			{Code: "S4", Name: "Sizzling Hungarian", Description: "Hungarian sausage (2 pcs) served on a sizzling plate.", BasePrice: price(220)},
			{Code: "S5", Name: "Pork Sisig", Description: "Choice of Pork or Chicken.", BasePrice: price(230)},
			{Code: "S6", Name: "Sizzling Hotdog", Description: "Tender Juicy Hotdog on a sizzling plate.", BasePrice: price(175)},
			{Code: "S7", Name: "Chicken Feet Dimsum", BasePrice: price(190)},
		},
	},
	{
		Slug: "seafood", Name: "Seafood", Icon: "🐟",
		Items: []seedItem{
			{Name: "Cajun Mix Seafood", Options: []seedOption{
				{"With Rice", 290}, {"Small", 320}, {"Medium", 630}, {"Large", 940}, {"X-Large", 1250},
			}},
			{Code: "F1", Name: "Garlic Butter Shrimp", Options: []seedOption{
				{"S", 260}, {"M", 510}, {"L", 760}, {"XL", 1020},
			}},
			{Code: "F2", Name: "Bangus (Milkfish)", Description: "Marinated & grilled with tomatoes & onion toppings.", Options: []seedOption{
				{"Plain", 270}, {"With Rice", 290},
			}},
			{Code: "F4", Name: "Tilapia", Description: "Fried; served with soy-chili-calamansi dip.", Options: []seedOption{
				{"Plain", 170}, {"With Rice", 190},
			}},
		},
	},
	{
		Slug: "silog", Name: "Silog Meals", Icon: "🍳",
		Items: []seedItem{
			{Code: "B1", Name: "Corned Beef Silog", BasePrice: price(180)},
			{Code: "B2", Name: "Tapsilog", BasePrice: price(180)},
			{Code: "B3", Name: "Spam Silog", BasePrice: price(230)},
			{Code: "B4", Name: "Sisig Silog", Badges: "Best Seller", BasePrice: price(170)},
			{Code: "B5", Name: "Bacon Silog", BasePrice: price(170)},
			{Code: "B7", Name: "Hot Silog", BasePrice: price(130)},
		},
	},
	{
		Slug: "appetizers", Name: "Appetizers / Sides", Icon: "🍟",
		Items: []seedItem{
			{Code: "A1", Name: "French Fries", Options: []seedOption{
				{"S", 80}, {"M", 130}, {"L", 200}, {"XL", 340},
			}},
			{Code: "A2", Name: "Chicken Nuggets", Options: []seedOption{
				{"6 pcs", 145}, {"12 pcs", 280}, {"18 pcs", 425}, {"24 pcs", 570},
			}},
			{Code: "A3", Name: "Calamari", BasePrice: price(220)},
			{Code: "A6", Name: "Chicken Skin", Description: "Not always available", Badges: "Limited", BasePrice: price(195)},
		},
	},
	{
		Slug: "soup", Name: "Soup", Icon: "🍲",
		Items: []seedItem{
			{Name: "Pork Sinigang", BasePrice: price(360)},
			{Name: "Beef Bulalo", BasePrice: price(380)},
			{Name: "Sotanghon Soup", Description: "Vermicelli noodles with chicken & veggies", BasePrice: price(220)},
			{Name: "Korean Ramyeon", BasePrice: price(150)},
		},
	},
	{
		Slug: "lemonade", Name: "Lemonade & Fruit Drinks", Icon: "🍋",
		Items: []seedItem{
			{Code: "L1", Name: "Lemon Tea", BasePrice: price(85)},
			{Code: "L2", Name: "Lemonade", BasePrice: price(100)},
			{Code: "L3", Name: "Cucumber Lemonade", BasePrice: price(120)},
			{Code: "L5", Name: "Mango Lemonade", BasePrice: price(150)},
		},
	},
	{
		Slug: "alcohol", Name: "Alcoholic Drinks", Icon: "🍺",
		Items: []seedItem{
			{Name: "Beers", Options: []seedOption{
				{"Red Horse", 80}, {"San Mig Light", 80}, {"San Mig Apple", 80}, {"San Mig Pilsen", 80}, {"Smirnoff Mule", 120},
			}},
			{Name: "Whiskey", Options: []seedOption{
				{"Embassy", 80}, {"Jim Beam", 120}, {"Jameson", 140}, {"Jack Daniel", 170},
			}},
		},
	},
	{
		Slug: "buckets", Name: "Bucket Deals", Icon: "🍻",
		Items: []seedItem{
			{Name: "Bucket (6 pcs beer)", Description: "Choice of Red Horse, San Mig Apple, San Mig Light, San Mig Pilsen", Badges: "Free Karaoke!", BasePrice: price(450)},
			{Name: "Bucket Set 1", Description: "1 Bucket of Beer + 1 Pulutan (French Fries or 6 pcs Nuggets or Sizzling Hotdog)", BasePrice: price(570)},
		},
	},
}

// SeedMenu loads the catalog idempotently. Malformed items (pricing-mode
// violations) are rejected at this boundary rather than stored.
func SeedMenu(db *gorm.DB) error {
	for ci, sc := range catalog {
		category := models.MenuCategory{Slug: sc.Slug}
		if err := db.Where(&category).
			Attrs(models.MenuCategory{Name: sc.Name, Icon: sc.Icon, SortOrder: ci}).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}

		for _, si := range sc.Items {
			menu := models.Menu{
				CategoryID:  category.ID,
				Code:        si.Code,
				Name:        si.Name,
				Description: si.Description,
				Badges:      si.Badges,
				BasePrice:   si.BasePrice,
				Available:   true,
			}
			for oi, so := range si.Options {
				menu.Options = append(menu.Options, models.MenuOption{
					Label:     so.Label,
					Price:     so.Price,
					SortOrder: oi,
				})
			}
			if err := menu.Validate(); err != nil {
				return err
			}

			var count int64
			db.Model(&models.Menu{}).
				Where("category_id = ? AND name = ?", category.ID, si.Name).
				Count(&count)
			if count > 0 {
				continue
			}
			if err := db.Create(&menu).Error; err != nil {
				return err
			}
		}
	}

	utils.InfoLogger.Printf("Menu catalog seeded (%d categories)", len(catalog))
	return nil
}
