// Package catalog holds the help-center article registry: which article
// pages exist and which support category each belongs to. Categories are
// assigned here, never derived from page content.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Group is one support category and its article paths relative to the base
// URL.
type Group struct {
	Category string   `json:"category"`
	Paths    []string `json:"paths"`
}

// Article is one resolved catalog entry.
type Article struct {
	URL      string
	Category string
}

// Load reads a seeds file (JSON array of groups). An empty path returns the
// built-in registry.
func Load(path string) ([]Group, error) {
	if path == "" {
		return Builtin(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seeds file: %w", err)
	}
	var groups []Group
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("decode seeds file: %w", err)
	}
	return groups, nil
}

// Resolve joins every path against baseURL and deduplicates across
// categories, keeping the first category an article appears under. Order is
// registry order.
func Resolve(groups []Group, baseURL string) []Article {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	seen := make(map[string]bool)
	var articles []Article
	for _, g := range groups {
		for _, p := range g.Paths {
			u := baseURL + strings.TrimPrefix(p, "/")
			if seen[u] {
				continue
			}
			seen[u] = true
			articles = append(articles, Article{URL: u, Category: g.Category})
		}
	}
	return articles
}

// Builtin returns the compiled-in registry of help & support article pages,
// grouped by the category pages they were collected from.
func Builtin() []Group {
	return []Group{
		{Category: "Banking - Account Enquiries", Paths: []string{
			"bank-account-new-opening.html",
			"bank-account-opening-documents-required.html",
			"bank-account-application-status.html",
			"bank-account-activate-ntb.html",
			"bank-deposit-accounts-account-transactions.html",
			"bank-account-view-account-number.html",
			"bank-deposit-accounts-check-account-balance.html",
			"bank-deposit-accounts-fall-below-fee.html",
			"bank-view-joint-account-info.html",
			"bank-account-closure.html",
		}},
		{Category: "Banking - Card Enquiries", Paths: []string{
			"bank-atm-debit-card-application.html",
			"card-activate-new-card.html",
			"card-overseas-enabling-for-overseas-use.html",
			"card-issues-card-replacement.html",
			"card-issues-lost-card.html",
			"general-incorrect-transaction.html",
			"card-issues-forget-pin.html",
			"bank-atm-debit-card-change-atm-card-limit.html",
			"card-issues-terminate-card.html",
		}},
		{Category: "Banking - Cheques", Paths: []string{
			"bank-cheque-depositing-cheques.html",
			"bank-cheque-clearing.html",
			"bank-cheque-view-cheque-status.html",
			"bank-cheque-returned-cheques-reasons.html",
			"bank-cheque-cancelling-cheques.html",
			"bank-cheque-request-new-cheque-book.html",
		}},
		{Category: "Banking - DBS digibank", Paths: []string{
			"bank-minimum-operating-system-requirements.html",
			"bank-ibanking-digital-token.html",
			"guide-ibanking.html",
			"bank-ibanking-digital-token-setup.html",
			"bank-ibanking-application.html",
			"bank-digibank-reset-uid-pin.html",
			"bank-ibanking-notification-alerts.html",
		}},
		{Category: "Banking - Local Funds Transfer", Paths: []string{
			"bank-local-funds-transfer-transfer-to-other-bank-accounts.html",
			"bank-local-funds-transfer-add-bank-recipient.html",
			"bank-local-funds-transfer-remove-bank-recipient.html",
			"guide-paylah.html",
			"bank-local-funds-transfer-setup-recurring-funds-transfer.html",
			"bank-local-wrong-funds-transfer.html",
			"bank-receive-funds-from-others.html",
		}},
		{Category: "Banking - Overseas Funds Transfer", Paths: []string{
			"guide-remit.html",
			"bank-overseas-funds-transfer-new-remittance.html",
			"bank-overseas-dbs-remit.html",
			"bank-overseas-funds-transfer-countries.html",
			"bank-overseas-funds-transfer-fees-and-charges.html",
			"bank-overseas-funds-transfer-delayed.html",
			"bank-overseas-wrong-funds-transfer.html",
		}},
		{Category: "Banking - PayNow", Paths: []string{
			"bank-ssb-paynow-register-profile.html",
			"bank-ssb-paynow-check-profile.html",
			"bank-ssb-paynow-amend-profile.html",
			"bank-local-funds-transfer-add-paynow-recipient.html",
			"bank-local-funds-transfer-paynow-transfer.html",
			"bank-ssb-paynow-deregister-profile.html",
		}},
		{Category: "Banking - DBS PayLah", Paths: []string{
			"bank-ssb-apply-paylah.html",
			"bank-ssb-paylah-request-funds.html",
			"bank-ssb-paylah-transfer-funds.html",
			"bank-ssb-paylah-scan-and-pay.html",
			"bank-ssb-paylah-bill-payment.html",
			"bank-ssb-paylah-transaction-history.html",
			"bank-ssb-paylah-change-wallet-limit.html",
			"bank-ssb-reset-paylah.html",
			"bank-ssb-close-paylah.html",
		}},
		{Category: "Banking - Payments", Paths: []string{
			"bank-payment-bill-payment.html",
			"bank-payment-add-bill-payment-organisations.html",
			"bank-payment-pay-other-bank-credit-cards.html",
			"bank-payment-setup-giro-arrangement.html",
			"bank-payment-update-giro-limit.html",
			"bank-payment-terminate-giro-arrangement.html",
			"bank-payment-top-up-mobile-prepaid.html",
		}},
		{Category: "Banking - Statements", Paths: []string{
			"bank-statements-consolidated-statements.html",
			"bank-statements-retrieve-printed-statements.html",
			"bank-statements-estatements-enrol.html",
			"bank-statements-viewing-estatements.html",
		}},
		{Category: "Credit Card - Application & Termination", Paths: []string{
			"card-application-new-card.html",
			"card-application-supplementary-card.html",
			"card-application-documents.html",
			"card-application-eligibility.html",
			"card-application-status.html",
			"card-payment-mobile-wallet-application.html",
		}},
		{Category: "Credit Card - Bill Payment", Paths: []string{
			"card-payment-outstanding-balance.html",
			"card-payment-pay-credit-card-bills.html",
			"card-payment-due-date.html",
			"card-payment-giro-application.html",
			"card-payment-recurring.html",
		}},
		{Category: "Credit Card - Fees & Charges", Paths: []string{
			"card-charges-and-fees-annual-fee.html",
			"card-charges-and-fees-late-fee.html",
			"card-charges-and-fees-finance-charge.html",
			"card-charges-and-fees-cash-advance-fee.html",
		}},
		{Category: "Credit Card - Loyalty & Rewards", Paths: []string{
			"card-rewards-checking-your-dbs-points.html",
			"card-rewards-redeeming-dbs-points.html",
			"card-rewards-dbs-points-expiry.html",
		}},
		{Category: "Credit Card - Transaction", Paths: []string{
			"card-transaction-view-transaction-details.html",
			"card-transaction-declined-transaction.html",
			"card-statement-understanding-statement.html",
		}},
		{Category: "General - Bank Details", Paths: []string{
			"bank-general-swift-code-details.html",
			"bank-general-bank-branch-names-codes.html",
		}},
		{Category: "General - Update Profile", Paths: []string{
			"general-profile-update-address.html",
			"general-profile-update-email-address.html",
			"general-profile-update-mobile-number.html",
		}},
		{Category: "General - Fraud Prevention", Paths: []string{
			"general-digibank-security-measures.html",
			"guide-security-on-scams-and-fraud.html",
			"bank-ssb-safety-switch.html",
			"general-card-security-protect-your-card-and-pin.html",
			"general-online-safety.html",
		}},
		{Category: "Borrow - Cashline & Unsecured Loans", Paths: []string{
			"loans-application-new-cashline.html",
			"card-application-dbs-personal-loan.html",
			"loans-application-balance-transfer.html",
			"loans-cashline-fees-and-charges.html",
		}},
		{Category: "Borrow - Home Loans", Paths: []string{
			"loans-homeloan-partial-repayment.html",
			"loans-homeloan-full-repayment.html",
			"loans-homeloan-repay-using-cpf-funds.html",
			"loans-homeloan-understanding-statement.html",
		}},
		{Category: "Invest - Shares", Paths: []string{
			"investment-shares-apply-eps.html",
			"investment-shares-esa.html",
			"guide-vickers.html",
		}},
		{Category: "Invest - Singapore Savings Bonds", Paths: []string{
			"investment-ssb-apply.html",
			"investment-ssb-check-results.html",
			"investment-ssb-redeem.html",
		}},
		{Category: "Invest - Unit Trust", Paths: []string{
			"investment-ut-apply-invest-saver.html",
			"investment-ut-update-amount-invest-saver.html",
			"investment-ut-terminate-invest-saver.html",
		}},
		{Category: "Insure - Travel", Paths: []string{
			"insurance-travel-submit-ts-claim.html",
			"insurance-travel-marketplace-complimentary-travel-insurance.html",
		}},
		{Category: "Guides", Paths: []string{
			"guide-online-security.html",
			"guide-card-replacement.html",
			"guide-bill-payment.html",
			"guide-card-security.html",
			"guide-shopping.html",
			"guide-travel.html",
		}},
	}
}
