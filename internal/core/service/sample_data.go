package service

import "github.com/royalestate/realty-platform/internal/core/domain"

// SampleListings returns the fixed built-in set served in simulated mode so
// the interface stays demonstrable without a backend.
func SampleListings() []domain.Listing {
	return []domain.Listing{
		{
			ID:           "1",
			Title:        "فيلا مستقلة في التجمع الخامس",
			Price:        15000000,
			Area:         450,
			Location:     "القاهرة الجديدة، حي النرجس",
			PropertyType: domain.TypeVilla,
			DealType:     domain.DealSale,
			ImageURL:     "https://picsum.photos/800/600?random=1",
			Bedrooms:     5,
			Bathrooms:    4,
			Finishing:    "الترا سوبر لوكس",
			Description:  "فيلا رائعة بحديقة خاصة وحمام سباحة، تشطيب استيراد بالكامل.",
		},
		{
			ID:           "2",
			Title:        "شقة بفيو مميز بالعاصمة الإدارية",
			Price:        3500000,
			Area:         165,
			Location:     "العاصمة الإدارية، الحي السابع R7",
			PropertyType: domain.TypeApartment,
			DealType:     domain.DealSale,
			ImageURL:     "https://picsum.photos/800/600?random=2",
			Bedrooms:     3,
			Bathrooms:    2,
			Finishing:    "نصف تشطيب",
			Description:  "شقة ناصية بحري صريح، قريبة من الخدمات والجامعة.",
		},
		{
			ID:           "3",
			Title:        "مقر إداري بالتجمع الأول",
			Price:        60000,
			Area:         120,
			Location:     "التجمع الأول، شارع التسعين",
			PropertyType: domain.TypeCommercial,
			DealType:     domain.DealRent,
			ImageURL:     "https://picsum.photos/800/600?random=3",
			Bedrooms:     0,
			Bathrooms:    2,
			Finishing:    "سوبر لوكس",
			Description:  "مقر إداري مرخص، يصلح لجميع الأغراض والشركات الكبرى.",
		},
	}
}
