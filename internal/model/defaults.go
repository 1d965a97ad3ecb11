package model

// DefaultSettings are used until the user saves their own.
func DefaultSettings() Settings {
	return Settings{Groceries: 250, Buffer: 0, LumpRule: 100}
}

// DefaultDebts is the sample debt list seeded on first run.
func DefaultDebts() []Debt {
	return []Debt{
		{Name: "Capital One Gold", Balance: 300, MinimumPayment: 25},
		{Name: "Simplii", Balance: 1500, MinimumPayment: 40},
		{Name: "Triangle", Balance: 4881, MinimumPayment: 193},
		{Name: "Rewards", Balance: 4937, MinimumPayment: 150},
	}
}

// DefaultBills is the sample bill list seeded on first run.
func DefaultBills() []Bill {
	monthly := func(name string, amount float64, day int) Bill {
		return Bill{Name: name, Amount: amount, Frequency: Monthly, DueDay: day}
	}
	return []Bill{
		monthly("Rent", 1650, 1),
		monthly("Uber One", 11.29, 3),
		monthly("La Fitness", 33.89, 8),
		monthly("Simplii", 40, 9),
		monthly("Apple", 28.24, 12),
		monthly("Apple", 7.9, 14),
		monthly("Netflix", 9.03, 15),
		monthly("Bell", 67.8, 15),
		monthly("Capital One", 300, 18),
		monthly("La Fitness", 57, 18),
		monthly("Apple", 10.68, 23),
		monthly("Google One", 3.15, 23),
		monthly("Rogers", 264.83, 23),
		monthly("Amazon Channels", 10.16, 24),
		monthly("Amazon Channels", 12.42, 24),
		monthly("Belair Direct", 226, 28),
		monthly("Spotify", 14.34, 28),
		monthly("Triangle", 193, 28),
		{Name: "Easy Financial", Amount: 182, Frequency: Biweekly},
		{Name: "Car Loan", Amount: 286, Frequency: Biweekly},
	}
}

// DefaultState is the sample state used on first run.
func DefaultState() State {
	return State{
		Settings: DefaultSettings(),
		Debts:    DefaultDebts(),
		Bills:    DefaultBills(),
	}
}
