package pricing

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/pkg/db/models"
	"github.com/exportracker/quotation-backend/pkg/enums"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/types"
)

func strPtr(v string) *string { return &v }

func expectCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
	return typed
}

func detail(t *testing.T, typed *pkgerrors.Error, key string) any {
	t.Helper()
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected map details, got %T", typed.Details())
	}
	return details[key]
}

func expectAvailable(t *testing.T, typed *pkgerrors.Error, want []string) {
	t.Helper()
	if got := detail(t, typed, "available"); !reflect.DeepEqual(got, want) {
		t.Fatalf("available: expected %v, got %v", want, got)
	}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestResolveIsCaseInsensitiveSubstring(t *testing.T) {
	candidates := []Candidate{{ID: uuid.New(), Name: "Acme Exports"}}

	match, err := Resolve(candidates, "acme")
	if err != nil {
		t.Fatalf("resolve acme: %v", err)
	}
	if match.Name != "Acme Exports" {
		t.Fatalf("unexpected match %q", match.Name)
	}

	match, err = Resolve(candidates, "EXPORTS")
	if err != nil {
		t.Fatalf("resolve EXPORTS: %v", err)
	}
	if match.ID != candidates[0].ID {
		t.Fatalf("unexpected match id %s", match.ID)
	}
}

func TestResolveIsAsymmetric(t *testing.T) {
	candidates := []Candidate{{ID: uuid.New(), Name: "Acme Exports"}}

	_, err := Resolve(candidates, "exports co")
	typed := expectCode(t, err, pkgerrors.CodeNotFound)
	expectAvailable(t, typed, []string{"Acme Exports"})
	if got := detail(t, typed, "query"); got != "exports co" {
		t.Fatalf("unexpected query detail %v", got)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	first := Candidate{ID: uuid.New(), Name: "Siam Trading"}
	second := Candidate{ID: uuid.New(), Name: "Siam"}
	candidates := []Candidate{first, second}

	for i := 0; i < 5; i++ {
		match, err := Resolve(candidates, "siam")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if match.ID != first.ID {
			t.Fatalf("expected first candidate, got %q", match.Name)
		}
	}
}

func TestResolveRejectsBlankQuery(t *testing.T) {
	_, err := Resolve([]Candidate{{Name: "Acme"}}, "   ")
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestResolveEmptyCandidatesListsNothing(t *testing.T) {
	_, err := Resolve(nil, "acme")
	typed := expectCode(t, err, pkgerrors.CodeNotFound)
	expectAvailable(t, typed, []string{})
}

func TestResolveCompanyPicksPositionAmongDuplicates(t *testing.T) {
	// Unsaved rows share the zero id; the match must still be the first one.
	first, second := uuid.New(), uuid.New()
	companies := []models.Company{
		{Name: "Globex"},
		{UserID: first, Name: "Siam Trading"},
		{UserID: second, Name: "Siam Trading"},
	}

	match, err := ResolveCompany(companies, "siam")
	if err != nil {
		t.Fatalf("resolve company: %v", err)
	}
	if match.UserID != first {
		t.Fatalf("expected first Siam Trading row, got %+v", match)
	}
}

func TestResolveDestinationFallsBackToPort(t *testing.T) {
	japan := models.Destination{ID: uuid.New(), Country: "Japan", Port: strPtr("Tokyo")}
	china := models.Destination{ID: uuid.New(), Country: "China", Port: strPtr("Shanghai")}
	dests := []models.Destination{japan, china}

	match, err := ResolveDestination(dests, "shang")
	if err != nil || match.ID != china.ID {
		t.Fatalf("expected port fallback to China, got %+v err=%v", match, err)
	}

	match, err = ResolveDestination(dests, "japan")
	if err != nil || match.ID != japan.ID {
		t.Fatalf("expected Japan, got %+v err=%v", match, err)
	}

	_, err = ResolveDestination(dests, "Osaka")
	typed := expectCode(t, err, pkgerrors.CodeNotFound)
	expectAvailable(t, typed, []string{"Japan (Tokyo)", "China (Shanghai)"})
}

func TestResolveDestinationPrefersCountryOverPort(t *testing.T) {
	portMatch := models.Destination{ID: uuid.New(), Country: "Vietnam", Port: strPtr("Korea Terminal")}
	countryMatch := models.Destination{ID: uuid.New(), Country: "Korea", Port: strPtr("Busan")}

	match, err := ResolveDestination([]models.Destination{portMatch, countryMatch}, "korea")
	if err != nil {
		t.Fatalf("resolve destination: %v", err)
	}
	if match.ID != countryMatch.ID {
		t.Fatalf("expected country match, got %s", match.Country)
	}
}

func TestComputeWeightsSinglePallet(t *testing.T) {
	w, err := ComputeWeights([]types.Pallet{{Length: 100, Width: 100, Height: 100, Weight: 150, Quantity: 1}})
	if err != nil {
		t.Fatalf("compute weights: %v", err)
	}
	if w.Actual != 150 {
		t.Fatalf("unexpected actual %v", w.Actual)
	}
	if !near(w.Volumetric, 166.6667, 0.001) {
		t.Fatalf("unexpected volumetric %v", w.Volumetric)
	}
	if w.Chargeable != w.Volumetric {
		t.Fatalf("chargeable should be volumetric, got %v", w.Chargeable)
	}
}

func TestComputeWeightsChargeableIsMax(t *testing.T) {
	cases := [][]types.Pallet{
		{{Length: 10, Width: 10, Height: 10, Weight: 500, Quantity: 1}},
		{{Length: 200, Width: 200, Height: 200, Weight: 1, Quantity: 3}},
		{{Length: 0, Width: 0, Height: 0, Weight: 0, Quantity: 1}},
		{{Length: 120, Width: 80, Height: 100, Weight: 300}, {Length: 50, Width: 50, Height: 50, Weight: 10, Quantity: 2}},
	}
	for i, pallets := range cases {
		w, err := ComputeWeights(pallets)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if w.Actual < 0 || w.Volumetric < 0 {
			t.Fatalf("case %d: negative component %+v", i, w)
		}
		if w.Chargeable != math.Max(w.Actual, w.Volumetric) {
			t.Fatalf("case %d: chargeable %v is not the max of %+v", i, w.Chargeable, w)
		}
	}
}

func TestComputeWeightsMultipliesQuantity(t *testing.T) {
	w, err := ComputeWeights([]types.Pallet{{Length: 60, Width: 100, Height: 100, Weight: 50, Quantity: 4}})
	if err != nil {
		t.Fatalf("compute weights: %v", err)
	}
	if w.Actual != 200 || w.Volumetric != 400 || w.Chargeable != 400 {
		t.Fatalf("unexpected weights %+v", w)
	}
}

func TestComputeWeightsRejectsEmptyAndNegative(t *testing.T) {
	_, err := ComputeWeights(nil)
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = ComputeWeights([]types.Pallet{{Length: -1, Width: 1, Height: 1, Weight: 1, Quantity: 1}})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestComputeWeightsRejectsOverflow(t *testing.T) {
	_, err := ComputeWeights([]types.Pallet{{Length: 1e200, Width: 1e200, Height: 1, Weight: 1, Quantity: 1}})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = ComputeWeights([]types.Pallet{{Weight: math.MaxFloat64}, {Weight: math.MaxFloat64}})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestAggregateSumsComponents(t *testing.T) {
	charges := []types.AdditionalCharge{{Description: "trucking", Amount: 13000}, {Description: "docs", Amount: 500}}
	costs := Aggregate(200, FreightRatePerKg, 2000, charges)

	if costs.Freight != 30000 || costs.AdditionalTotal != 13500 || costs.Clearance != 2000 {
		t.Fatalf("unexpected costs %+v", costs)
	}
	if costs.Total != costs.Freight+costs.Clearance+costs.AdditionalTotal {
		t.Fatalf("total %v is not the sum of its parts", costs.Total)
	}
}

func TestAggregatePassesNegativeAmountsThrough(t *testing.T) {
	costs := Aggregate(10, FreightRatePerKg, -100, []types.AdditionalCharge{{Description: "credit", Amount: -2000}})
	if costs.Total != 1500.0-100-2000 {
		t.Fatalf("unexpected total %v", costs.Total)
	}
}

func TestPlanTransitionAcceptsEveryStatusFromEveryStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	// The machine is permissive; restricting edges such as completed -> draft
	// is a product decision.
	for _, from := range enums.QuotationStatuses() {
		for _, to := range enums.QuotationStatuses() {
			q := &models.Quotation{Status: from}
			patch, err := PlanTransition(to.String(), now)
			if err != nil {
				t.Fatalf("%s -> %s: %v", from, to, err)
			}
			patch.Apply(q)
			if q.Status != to {
				t.Fatalf("%s -> %s: status is %s", from, to, q.Status)
			}
		}
	}
}

func TestPlanTransitionRejectsUnknownStatus(t *testing.T) {
	valid := []string{"draft", "sent", "accepted", "rejected", "docs_uploaded", "completed", "Shipped"}
	for _, target := range []string{"shipped", "COMPLETED", "", "archived"} {
		_, err := PlanTransition(target, time.Now())
		typed := expectCode(t, err, pkgerrors.CodeInvalidStatus)
		if got := detail(t, typed, "valid_statuses"); !reflect.DeepEqual(got, valid) {
			t.Fatalf("%q: unexpected valid statuses %v", target, got)
		}
		if !strings.Contains(typed.Message(), "docs_uploaded") {
			t.Fatalf("%q: message should list valid statuses: %s", target, typed.Message())
		}
	}
}

func TestPlanTransitionStampsCompletedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("ICT", 7*3600))

	patch, err := PlanTransition("completed", now)
	if err != nil {
		t.Fatalf("plan transition: %v", err)
	}
	if patch.CompletedAt == nil || !patch.CompletedAt.Equal(now) || patch.CompletedAt.Location() != time.UTC {
		t.Fatalf("expected completed_at stamped in UTC, got %v", patch.CompletedAt)
	}
	if _, ok := patch.Columns()["completed_at"]; !ok {
		t.Fatalf("expected completed_at column")
	}

	q := &models.Quotation{Status: enums.QuotationStatusSent}
	patch.Apply(q)
	if q.CompletedAt == nil || !q.CompletedAt.Equal(now) {
		t.Fatalf("expected completed_at applied, got %v", q.CompletedAt)
	}
}

func TestPlanTransitionLeavesCompletedAtUntouched(t *testing.T) {
	stamped := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	q := &models.Quotation{Status: enums.QuotationStatusCompleted, CompletedAt: &stamped}

	patch, err := PlanTransition("Shipped", time.Now())
	if err != nil {
		t.Fatalf("plan transition: %v", err)
	}
	if patch.CompletedAt != nil {
		t.Fatalf("non-completed target should not stamp completed_at")
	}
	if _, ok := patch.Columns()["completed_at"]; ok {
		t.Fatalf("completed_at column should be absent")
	}

	patch.Apply(q)
	if q.Status != enums.QuotationStatusShipped {
		t.Fatalf("unexpected status %s", q.Status)
	}
	if q.CompletedAt == nil || !q.CompletedAt.Equal(stamped) {
		t.Fatalf("completed_at should be kept, got %v", q.CompletedAt)
	}
}

func TestPlanTransitionReapplyingCompletedRefreshesTimestamp(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)
	q := &models.Quotation{}

	for _, at := range []time.Time{first, second} {
		patch, err := PlanTransition("completed", at)
		if err != nil {
			t.Fatalf("plan transition: %v", err)
		}
		patch.Apply(q)
	}

	if q.Status != enums.QuotationStatusCompleted {
		t.Fatalf("unexpected status %s", q.Status)
	}
	if !q.CompletedAt.Equal(second) {
		t.Fatalf("expected refreshed completed_at, got %v", q.CompletedAt)
	}
}

func testCandidates() ([]models.Company, []models.Destination) {
	companies := []models.Company{
		{ID: uuid.New(), Name: "Acme Exports"},
		{ID: uuid.New(), Name: "Bangkok Freight Co"},
	}
	destinations := []models.Destination{
		{ID: uuid.New(), Country: "Japan", Port: strPtr("Tokyo")},
		{ID: uuid.New(), Country: "Germany", Port: strPtr("Hamburg")},
	}
	return companies, destinations
}

func TestBuildSinglePalletScenario(t *testing.T) {
	companies, destinations := testCandidates()
	userID := uuid.New()

	result, err := Build(BuildRequest{
		UserID:           userID,
		CompanyQuery:     "acme",
		DestinationQuery: "japan",
		Companies:        companies,
		Destinations:     destinations,
		Pallets:          json.RawMessage(`[{"length":100,"width":100,"height":100,"weight":150,"quantity":1}]`),
		CustomerName:     "Khun Somchai",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	q := result.Quotation
	if q.UserID != userID || q.CompanyID != companies[0].ID || q.CompanyName != "Acme Exports" {
		t.Fatalf("unexpected owner or company: %+v", q)
	}
	if q.DestinationID != destinations[0].ID || q.Destination != "Japan" {
		t.Fatalf("unexpected destination %s", q.Destination)
	}
	if q.Status != enums.QuotationStatusDraft || q.DeliveryVehicleType != enums.DeliveryVehicle4Wheel {
		t.Fatalf("unexpected defaults status=%s vehicle=%s", q.Status, q.DeliveryVehicleType)
	}
	if q.DeliveryCost != 0 || q.CompletedAt != nil {
		t.Fatalf("expected zero delivery cost and no completed_at")
	}

	if q.TotalActualWeight != 150 {
		t.Fatalf("unexpected actual weight %v", q.TotalActualWeight)
	}
	if !near(q.TotalVolumeWeight, 166.67, 0.01) || !near(q.ChargeableWeight, 166.67, 0.01) {
		t.Fatalf("unexpected volumetric/chargeable %v/%v", q.TotalVolumeWeight, q.ChargeableWeight)
	}
	if !near(q.TotalFreightCost, 25000, 0.0001) {
		t.Fatalf("unexpected freight %v", q.TotalFreightCost)
	}
	if q.TotalCost != q.TotalFreightCost {
		t.Fatalf("total %v should equal freight %v", q.TotalCost, q.TotalFreightCost)
	}
	if len(q.AdditionalCharges) != 0 {
		t.Fatalf("expected no additional charges")
	}

	if result.Breakdown.Units != 1 || result.Breakdown.FreightRatePerKg != FreightRatePerKg {
		t.Fatalf("unexpected breakdown %+v", result.Breakdown)
	}
}

func TestBuildTwoPalletsWithChargesScenario(t *testing.T) {
	companies, destinations := testCandidates()

	result, err := Build(BuildRequest{
		UserID:            uuid.New(),
		CompanyQuery:      "freight",
		DestinationQuery:  "hamburg",
		Companies:         companies,
		Destinations:      destinations,
		Pallets:           json.RawMessage(`[{"length":120,"width":80,"height":100,"weight":300},{"length":100,"width":100,"height":150,"weight":200,"quantity":1}]`),
		AdditionalCharges: json.RawMessage(`[{"description":"trucking","amount":13000}]`),
		ClearanceCost:     2000,
		CustomerName:      "Global Buyer GmbH",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	q := result.Quotation
	if q.CompanyName != "Bangkok Freight Co" || q.DestinationID != destinations[1].ID {
		t.Fatalf("unexpected resolution %s / %s", q.CompanyName, q.Destination)
	}
	if q.TotalActualWeight != 500 || q.TotalVolumeWeight != 410 || q.ChargeableWeight != 500 {
		t.Fatalf("unexpected weights %v/%v/%v", q.TotalActualWeight, q.TotalVolumeWeight, q.ChargeableWeight)
	}
	if q.TotalFreightCost != 75000 {
		t.Fatalf("unexpected freight %v", q.TotalFreightCost)
	}

	var chargeSum float64
	for _, charge := range q.AdditionalCharges {
		chargeSum += charge.Amount
	}
	if q.TotalCost != q.TotalFreightCost+2000+chargeSum || q.TotalCost != 90000 {
		t.Fatalf("unexpected total %v", q.TotalCost)
	}
}

func TestBuildExpandsQuantityIntoUnits(t *testing.T) {
	companies, destinations := testCandidates()

	result, err := Build(BuildRequest{
		CompanyQuery:      "acme",
		DestinationQuery:  "germany",
		Companies:         companies,
		Destinations:      destinations,
		Pallets:           json.RawMessage(`"[{\"length\":83,\"width\":124,\"height\":152,\"weight\":100,\"quantity\":7}]"`),
		AdditionalCharges: json.RawMessage(`[{"description":"trucking","amount":"13000"}]`),
		ClearanceCost:     5350,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	q := result.Quotation
	if len(q.Pallets) != 7 {
		t.Fatalf("expected 7 units, got %d", len(q.Pallets))
	}
	for _, p := range q.Pallets {
		if p.Quantity != 1 || p.Length != 83 {
			t.Fatalf("unexpected unit %+v", p)
		}
	}
	if result.Breakdown.Units != 7 || q.TotalActualWeight != 700 {
		t.Fatalf("unexpected units=%d actual=%v", result.Breakdown.Units, q.TotalActualWeight)
	}
	if !near(q.TotalVolumeWeight, 83.0*124*152*7/6000, 1e-9) {
		t.Fatalf("unexpected volumetric %v", q.TotalVolumeWeight)
	}
	if !near(q.TotalCost, q.ChargeableWeight*FreightRatePerKg+5350+13000, 1e-6) {
		t.Fatalf("unexpected total %v", q.TotalCost)
	}
}

func TestBuildErrors(t *testing.T) {
	companies, destinations := testCandidates()
	base := func() BuildRequest {
		return BuildRequest{
			CompanyQuery:     "acme",
			DestinationQuery: "japan",
			Companies:        companies,
			Destinations:     destinations,
			Pallets:          json.RawMessage(`[{"length":1,"width":1,"height":1,"weight":1}]`),
		}
	}

	cases := []struct {
		name   string
		mutate func(*BuildRequest)
		code   pkgerrors.Code
	}{
		{"empty pallets", func(r *BuildRequest) { r.Pallets = json.RawMessage(`[]`) }, pkgerrors.CodeValidation},
		{"missing pallets", func(r *BuildRequest) { r.Pallets = nil }, pkgerrors.CodeValidation},
		{"pallets not json", func(r *BuildRequest) { r.Pallets = json.RawMessage(`"not json"`) }, pkgerrors.CodeMalformedInput},
		{"pallets object", func(r *BuildRequest) { r.Pallets = json.RawMessage(`{"length":1}`) }, pkgerrors.CodeMalformedInput},
		{"pallet item scalar", func(r *BuildRequest) { r.Pallets = json.RawMessage(`[1,2]`) }, pkgerrors.CodeMalformedInput},
		{"pallet field text", func(r *BuildRequest) { r.Pallets = json.RawMessage(`[{"length":"long"}]`) }, pkgerrors.CodeMalformedInput},
		{"negative weight", func(r *BuildRequest) { r.Pallets = json.RawMessage(`[{"weight":-5}]`) }, pkgerrors.CodeValidation},
		{"fractional quantity", func(r *BuildRequest) { r.Pallets = json.RawMessage(`[{"weight":5,"quantity":1.5}]`) }, pkgerrors.CodeValidation},
		{"too many units", func(r *BuildRequest) { r.Pallets = json.RawMessage(`[{"weight":5,"quantity":1001}]`) }, pkgerrors.CodeValidation},
		{"quantity beyond int range", func(r *BuildRequest) {
			r.Pallets = json.RawMessage(`[{"length":50,"width":50,"height":50,"weight":500,"quantity":1e19},{"length":100,"width":100,"height":100,"weight":150,"quantity":1}]`)
		}, pkgerrors.CodeValidation},
		{"dimensions overflow", func(r *BuildRequest) {
			r.Pallets = json.RawMessage(`[{"length":1e200,"width":1e200,"height":1,"weight":1}]`)
		}, pkgerrors.CodeValidation},
		{"freight overflows", func(r *BuildRequest) {
			r.Pallets = json.RawMessage(`[{"weight":1e307}]`)
		}, pkgerrors.CodeValidation},
		{"clearance overflows total", func(r *BuildRequest) {
			r.ClearanceCost = math.MaxFloat64
			r.AdditionalCharges = json.RawMessage(`[{"description":"handling","amount":1.7e308}]`)
		}, pkgerrors.CodeValidation},
		{"charges overflow", func(r *BuildRequest) {
			r.AdditionalCharges = json.RawMessage(`[{"amount":1.7e308},{"amount":1.7e308}]`)
		}, pkgerrors.CodeValidation},
		{"charges malformed", func(r *BuildRequest) { r.AdditionalCharges = json.RawMessage(`[{"amount":true}]`) }, pkgerrors.CodeMalformedInput},
		{"charge description number", func(r *BuildRequest) { r.AdditionalCharges = json.RawMessage(`[{"description":5,"amount":1}]`) }, pkgerrors.CodeMalformedInput},
		{"unknown company", func(r *BuildRequest) { r.CompanyQuery = "nobody" }, pkgerrors.CodeNotFound},
		{"unknown destination", func(r *BuildRequest) { r.DestinationQuery = "mars" }, pkgerrors.CodeNotFound},
		{"bad vehicle", func(r *BuildRequest) { r.DeliveryVehicleType = "rocket" }, pkgerrors.CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(&req)
			result, err := Build(req)
			expectCode(t, err, tc.code)
			if result != nil {
				t.Fatalf("expected no result on error")
			}
		})
	}
}

func TestBuildUnknownCompanyListsAvailableNames(t *testing.T) {
	companies, destinations := testCandidates()
	_, err := Build(BuildRequest{
		CompanyQuery:     "nobody",
		DestinationQuery: "japan",
		Companies:        companies,
		Destinations:     destinations,
		Pallets:          json.RawMessage(`[{"weight":1}]`),
	})
	typed := expectCode(t, err, pkgerrors.CodeNotFound)
	expectAvailable(t, typed, []string{"Acme Exports", "Bangkok Freight Co"})
}

func TestDecodePalletsDefaultsMissingFields(t *testing.T) {
	pallets, err := DecodePallets(json.RawMessage(`[{"weight":12.5},{"length":"10","width":10,"height":10,"quantity":0}]`))
	if err != nil {
		t.Fatalf("decode pallets: %v", err)
	}
	want := types.Pallets{
		{Weight: 12.5, Quantity: 1},
		{Length: 10, Width: 10, Height: 10, Quantity: 1},
	}
	if !reflect.DeepEqual(pallets, want) {
		t.Fatalf("expected %+v, got %+v", want, pallets)
	}
}

func TestDecodeAdditionalChargesOptional(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`)} {
		charges, err := DecodeAdditionalCharges(raw)
		if err != nil || len(charges) != 0 {
			t.Fatalf("%q: expected empty charges, got %v err=%v", raw, charges, err)
		}
	}

	charges, err := DecodeAdditionalCharges(json.RawMessage(`[{"description":" docs ","amount":-250}]`))
	if err != nil {
		t.Fatalf("decode charges: %v", err)
	}
	want := types.AdditionalCharges{{Description: "docs", Amount: -250}}
	if !reflect.DeepEqual(charges, want) {
		t.Fatalf("expected %+v, got %+v", want, charges)
	}
}

func TestTotalByCompany(t *testing.T) {
	quotations := []models.Quotation{
		{CompanyName: "Siam Trading", TotalCost: 1000},
		{CompanyName: "Acme Exports", TotalCost: 250.5},
		{CompanyName: "Siam Trading", TotalCost: 2000},
		{CompanyName: "Siam", TotalCost: 99999},
	}

	total, err := TotalByCompany(quotations, "SIAM")
	if err != nil {
		t.Fatalf("total by company: %v", err)
	}
	if total.CompanyName != "Siam Trading" || total.QuotationCount != 2 || total.TotalAmount != 3000 {
		t.Fatalf("unexpected total %+v", total)
	}

	_, err = TotalByCompany(quotations, "globex")
	typed := expectCode(t, err, pkgerrors.CodeNotFound)
	expectAvailable(t, typed, []string{"Siam Trading", "Acme Exports", "Siam"})
}
