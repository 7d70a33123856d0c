package model

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Category is a closed set of catalog labels. The empty string means
// uncategorized.
type Category string

const (
	CategoryFood           Category = "food"
	CategoryArtsCrafts     Category = "arts_crafts"
	CategoryAutomotive     Category = "automotive"
	CategoryBaby           Category = "baby"
	CategoryBeauty         Category = "beauty"
	CategoryBooks          Category = "books"
	CategoryComputers      Category = "computers"
	CategoryElectronics    Category = "electronics"
	CategoryFashion        Category = "fashion"
	CategoryHealth         Category = "health"
	CategoryHomeKitchen    Category = "home_kitchen"
	CategoryIndustrial     Category = "industrial"
	CategoryKidsFashion    Category = "kids_fashion"
	CategoryMoviesTV       Category = "movies_tv"
	CategoryMusic          Category = "music"
	CategoryOffice         Category = "office"
	CategoryPetSupplies    Category = "pet_supplies"
	CategorySportsOutdoors Category = "sports_outdoors"
	CategoryToolsHome      Category = "tools_home"
	CategoryToysGames      Category = "toys_games"
	CategoryVideoGames     Category = "video_games"
	CategoryClothing       Category = "clothing"
	CategoryHome           Category = "home"
	CategorySports         Category = "sports"
	CategorySneakers       Category = "sneakers"
)

var categories = map[Category]bool{
	CategoryFood: true, CategoryArtsCrafts: true, CategoryAutomotive: true,
	CategoryBaby: true, CategoryBeauty: true, CategoryBooks: true,
	CategoryComputers: true, CategoryElectronics: true, CategoryFashion: true,
	CategoryHealth: true, CategoryHomeKitchen: true, CategoryIndustrial: true,
	CategoryKidsFashion: true, CategoryMoviesTV: true, CategoryMusic: true,
	CategoryOffice: true, CategoryPetSupplies: true, CategorySportsOutdoors: true,
	CategoryToolsHome: true, CategoryToysGames: true, CategoryVideoGames: true,
	CategoryClothing: true, CategoryHome: true, CategorySports: true,
	CategorySneakers: true,
}

func (c Category) Valid() bool {
	return c == "" || categories[c]
}
