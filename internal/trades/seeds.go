package trades

import "time"

// SeedTrades returns the built-in demo records injected by the merge
// layer for IDs absent from both the remote store and the local cache,
// so a first run is never empty. IDs are fixed so a real record with the
// same ID always wins.
func SeedTrades() []Trade {
	createdAt := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	qty2 := int64(2)
	qty1 := int64(1)
	price180000 := int64(180000)
	price42000 := int64(42000)

	return []Trade{
		{
			ID:           "seed-trade-0001",
			SellerUserID: "seed-seller-01",
			BuyerUserID:  "seed-buyer-01",
			SellerName:   "Takeda Kiko Co., Ltd.",
			BuyerName:    "Aoba Machinery Inc.",
			SellerProfile: CompanyProfile{
				Name:        "Takeda Kiko Co., Ltd.",
				Address:     "2-14-6 Minamihorie, Nishi-ku, Osaka",
				Tel:         "06-6533-0101",
				ContactName: "Takeda",
			},
			BuyerProfile: CompanyProfile{
				Name:        "Aoba Machinery Inc.",
				Address:     "1-8-2 Kanda Sudacho, Chiyoda-ku, Tokyo",
				Tel:         "03-5256-2200",
				ContactName: "Sasaki",
			},
			Items: []StatementItem{
				{
					LineID:          "seed-line-0001",
					Maker:           "Mori Seiki",
					ItemName:        "NC lathe SL-25",
					Qty:             &qty2,
					UnitPrice:       &price180000,
					StorageLocation: "Osaka No.2 warehouse",
				},
			},
			TaxRate:   DefaultTaxRate,
			Todos:     BuildTodosFromStatus(StatusApprovalRequired),
			Status:    StatusApprovalRequired,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		{
			ID:           "seed-trade-0002",
			SellerUserID: "seed-seller-02",
			BuyerUserID:  "seed-buyer-01",
			SellerName:   "Kuroda Sangyo K.K.",
			BuyerName:    "Aoba Machinery Inc.",
			SellerProfile: CompanyProfile{
				Name:        "Kuroda Sangyo K.K.",
				Address:     "3-2-1 Hakataekimae, Hakata-ku, Fukuoka",
				Tel:         "092-431-5500",
				ContactName: "Kuroda",
			},
			BuyerProfile: CompanyProfile{
				Name:        "Aoba Machinery Inc.",
				Address:     "1-8-2 Kanda Sudacho, Chiyoda-ku, Tokyo",
				Tel:         "03-5256-2200",
				ContactName: "Sasaki",
			},
			Items: []StatementItem{
				{
					LineID:    "seed-line-0002",
					ItemName:  "Band saw HA-250",
					Qty:       &qty1,
					UnitPrice: &price42000,
				},
			},
			TaxRate:   DefaultTaxRate,
			Todos:     BuildTodosFromStatus(StatusPaymentRequired),
			Status:    StatusPaymentRequired,
			CreatedAt: createdAt.Add(-48 * time.Hour),
			UpdatedAt: createdAt.Add(26 * time.Hour),
		},
	}
}
