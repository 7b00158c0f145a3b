// Package data holds the built-in global ledger catalog seeded at startup.
package data

import "github.com/ledback/ledback_backend/internal/core/domain"

// LedgerSeed describes one default global ledger.
type LedgerSeed struct {
	Name      string
	GroupName string
	Nature    domain.LedgerNature
	IsParty   bool
}

// DefaultLedgers is the standard chart of accounts offered to every user.
// Seeding is idempotent: names already present (case-insensitive) are skipped.
var DefaultLedgers = []LedgerSeed{
	// P&L / trading accounts
	{Name: "Sales", GroupName: "Sales", Nature: domain.Income},
	{Name: "Sales Returns", GroupName: "Sales", Nature: domain.Income},
	{Name: "Purchases", GroupName: "Purchases", Nature: domain.Expense},
	{Name: "Purchase Returns", GroupName: "Purchases", Nature: domain.Expense},
	{Name: "Opening Stock", GroupName: "Inventory", Nature: domain.Asset},
	{Name: "Closing Stock", GroupName: "Inventory", Nature: domain.Asset},
	{Name: "Wages", GroupName: "Direct Expense", Nature: domain.Expense},
	{Name: "Carriage Inward/Freight on Purchases", GroupName: "Direct Expense", Nature: domain.Expense},
	{Name: "Fuel/Power", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Rent Paid", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Salaries", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Interest Paid", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Commission Paid", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Discount Allowed", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Bad Debts", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Depreciation", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Repairs", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Advertising", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Rent Received", GroupName: "Indirect Income", Nature: domain.Income},
	{Name: "Interest Received", GroupName: "Indirect Income", Nature: domain.Income},
	{Name: "Commission Received", GroupName: "Indirect Income", Nature: domain.Income},
	{Name: "Discount Received", GroupName: "Indirect Income", Nature: domain.Income},
	{Name: "Insurance", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Electricity", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Telephone/Internet", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Travel Expenses", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Office Expenses", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Printing & Stationery", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Legal Fees", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Audit Fees", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Loss/Gain on Sale of Asset", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Provision for Doubtful Debts", GroupName: "Indirect Expense", Nature: domain.Expense},
	{Name: "Bank Charges", GroupName: "Indirect Expense", Nature: domain.Expense},

	// Assets
	{Name: "Land", GroupName: "Fixed Asset", Nature: domain.Asset},
	{Name: "Building", GroupName: "Fixed Asset", Nature: domain.Asset},
	{Name: "Plant & Machinery", GroupName: "Fixed Asset", Nature: domain.Asset},
	{Name: "Furniture", GroupName: "Fixed Asset", Nature: domain.Asset},
	{Name: "Vehicles", GroupName: "Fixed Asset", Nature: domain.Asset},
	{Name: "Cash in Hand", GroupName: "Current Asset", Nature: domain.Asset},
	{Name: "Cash at Bank", GroupName: "Current Asset", Nature: domain.Asset},
	{Name: "Debtors/Accounts Receivable", GroupName: "Current Asset", Nature: domain.Asset},
	{Name: "Bills Receivable", GroupName: "Current Asset", Nature: domain.Asset},
	{Name: "Prepaid Expenses", GroupName: "Current Asset", Nature: domain.Asset},
	{Name: "Advance Payments", GroupName: "Current Asset", Nature: domain.Asset},
	{Name: "Stock/Inventory", GroupName: "Current Asset", Nature: domain.Asset},
	{Name: "Investments", GroupName: "Investment", Nature: domain.Asset},

	// Liabilities & equity
	{Name: "Capital", GroupName: "Capital & Reserves", Nature: domain.Liability},
	{Name: "Bank Loan", GroupName: "Loan", Nature: domain.Liability},
	{Name: "Creditors/Accounts Payable", GroupName: "Current Liability", Nature: domain.Liability},
	{Name: "Bills Payable", GroupName: "Current Liability", Nature: domain.Liability},
	{Name: "Outstanding Expenses", GroupName: "Current Liability", Nature: domain.Liability},
	{Name: "Interest Due", GroupName: "Current Liability", Nature: domain.Liability},
	{Name: "Drawings", GroupName: "Capital & Reserves", Nature: domain.Liability},
	{Name: "Profit/Loss (from P&L)", GroupName: "Capital & Reserves", Nature: domain.Liability},
	{Name: "Reserves", GroupName: "Capital & Reserves", Nature: domain.Liability},

	// Internal adjustment account
	{Name: "Opening Balance Adjustment", GroupName: "Capital & Reserves", Nature: domain.Liability},
}
