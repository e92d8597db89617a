package quickcash

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
)

// jsonLines parses an encoded snapshot into one generic object per line,
// ready for jsonpath queries.
func jsonLines(t *testing.T, data []byte) []any {
	t.Helper()
	var lines []any
	for i, raw := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		var obj any
		if err := json.Unmarshal(raw, &obj); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", i+1, err)
		}
		lines = append(lines, obj)
	}
	return lines
}

func query(t *testing.T, obj any, path string) any {
	t.Helper()
	val, err := jsonpath.Get(path, obj)
	if err != nil {
		t.Fatalf("jsonpath %q: %v", path, err)
	}
	return val
}

func encodedFixture(t *testing.T) *Cashbox {
	t.Helper()
	cb, groceries, dining := testCashbox(t)
	checking, err := cb.NewAccount("WF Checking", "Wells Fargo", "123", Checking, "daily driver")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cb.NewAccount("WF Savings", "Wells Fargo", "456", Savings, ""); err != nil {
		t.Fatal(err)
	}
	tx, err := checking.NewTransaction(day("2009-06-02"), "Albertsons", "101")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tx.NewLineItem(dec(15.00), groceries, "weekly shop"); err != nil {
		t.Fatal(err)
	}
	if _, err := tx.NewLineItem(dec(4.25), dining, "deli counter"); err != nil {
		t.Fatal(err)
	}
	if _, err := cb.NewTransfer(checking, cb.Account("WF Savings"), day("2009-06-15"), "sweep", ""); err != nil {
		t.Fatal(err)
	}
	return cb
}

func TestEncodeCashbox(t *testing.T) {
	cb := encodedFixture(t)

	var buf bytes.Buffer
	if err := EncodeCashbox(&buf, cb); err != nil {
		t.Fatal(err)
	}
	lines := jsonLines(t, buf.Bytes())

	// Categories lead in name order, accounts follow in name order.
	var kinds, names []string
	for _, obj := range lines {
		kinds = append(kinds, query(t, obj, "$.record").(string))
		if name, err := jsonpath.Get("$.name", obj); err == nil {
			names = append(names, name.(string))
		}
	}
	wantKinds := []string{
		recCategory, recCategory,
		recAccount, recTransaction, recItem, recItem, recTransaction,
		recAccount, recTransaction,
	}
	if strings.Join(kinds, ",") != strings.Join(wantKinds, ",") {
		t.Errorf("record order = %v, want %v", kinds, wantKinds)
	}
	wantNames := []string{"Dining", "Groceries", "WF Checking", "WF Savings"}
	if strings.Join(names, ",") != strings.Join(wantNames, ",") {
		t.Errorf("name order = %v, want %v", names, wantNames)
	}

	// Spot-check the grocery item: amount is a bare JSON number.
	var item any
	for _, obj := range lines {
		if query(t, obj, "$.record") == recItem {
			item = obj
			break
		}
	}
	if got := query(t, item, "$.amount"); got != 15.00 {
		t.Errorf("item amount = %v (%T), want the number 15", got, got)
	}
	if got := query(t, item, "$.description"); got != "weekly shop" {
		t.Errorf("item description = %v, want %q", got, "weekly shop")
	}

	// Transfer legs carry mutual wiring.
	var legs []any
	for _, obj := range lines {
		if query(t, obj, "$.record") == recTransaction {
			if _, err := jsonpath.Get("$.peer", obj); err == nil {
				legs = append(legs, obj)
			}
		}
	}
	if len(legs) != 2 {
		t.Fatalf("found %d transfer legs, want 2", len(legs))
	}
	id0 := query(t, legs[0], "$.id").(float64)
	id1 := query(t, legs[1], "$.id").(float64)
	if query(t, legs[0], "$.peer").(float64) != id1 || query(t, legs[1], "$.peer").(float64) != id0 {
		t.Error("transfer legs do not reference each other")
	}

	// Deterministic output.
	var again bytes.Buffer
	if err := EncodeCashbox(&again, cb); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("two encodings of the same cashbox differ")
	}
}

func TestDecodeCashbox_RoundTrip(t *testing.T) {
	cb := encodedFixture(t)
	var buf bytes.Buffer
	if err := EncodeCashbox(&buf, cb); err != nil {
		t.Fatal(err)
	}

	restored, err := DecodeCashbox(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}

	// Re-encoding the restored cashbox reproduces the snapshot.
	var again bytes.Buffer
	if err := EncodeCashbox(&again, restored); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Errorf("round trip changed the snapshot:\n%s\nvs\n%s", buf.String(), again.String())
	}

	// Identifiers are preserved and the graph is rebuilt.
	checking := restored.Account("WF Checking")
	if checking == nil {
		t.Fatal("restored cashbox is missing WF Checking")
	}
	if got := checking.Balance(); !got.Equal(dec(19.25)) {
		t.Errorf("restored Balance = %v, want 19.25", got)
	}
	var transfer *Transaction
	for tx := range checking.Transactions() {
		if tx.IsTransfer() {
			transfer = tx
		}
	}
	if transfer == nil {
		t.Fatal("restored cashbox is missing the transfer leg")
	}
	if transfer.Peer().Peer() != transfer {
		t.Error("restored transfer legs are not mutually paired")
	}
	if got := transfer.Description(); got != "Transfer with WF Savings" {
		t.Errorf("restored transfer Description = %q", got)
	}

	// Counters resume above restored ids.
	fresh, err := restored.NewAccount("New", "", "", Checking, "")
	if err != nil {
		t.Fatal(err)
	}
	for a := range restored.Accounts() {
		if a != fresh && a.ID() >= fresh.ID() {
			t.Errorf("fresh account id %d collides with restored id %d", fresh.ID(), a.ID())
		}
	}
}

func TestDecodeCashbox_Rejections(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot string
	}{
		{
			name: "duplicate account name",
			snapshot: `{"record":"account","id":0,"name":"Checking","type":"checking"}
{"record":"account","id":1,"name":"Checking","type":"checking"}`,
		},
		{
			name:     "unknown record type",
			snapshot: `{"record":"wallet","id":0}`,
		},
		{
			name:     "item before its transaction",
			snapshot: `{"record":"item","id":0,"transaction":7,"amount":1,"category":-2}`,
		},
		{
			name: "transfer with only one wiring field",
			snapshot: `{"record":"account","id":0,"name":"Checking","type":"checking"}
{"record":"transaction","id":0,"account":0,"date":"2009-06-02","dest":0}`,
		},
		{
			name: "unpaired transfer legs",
			snapshot: `{"record":"account","id":0,"name":"A","type":"checking"}
{"record":"account","id":1,"name":"B","type":"checking"}
{"record":"transaction","id":0,"account":0,"date":"2009-06-02","dest":1,"peer":1}
{"record":"transaction","id":1,"account":1,"date":"2009-06-02","dest":0,"peer":0}
{"record":"transaction","id":2,"account":0,"date":"2009-06-03","dest":1,"peer":1}`,
		},
		{
			name:     "empty category name",
			snapshot: `{"record":"category","id":0,"name":"  "}`,
		},
		{
			// One account's set never sees the other's ids, the decoder
			// has to catch the collision itself.
			name: "transaction id reused across accounts",
			snapshot: `{"record":"account","id":0,"name":"A","type":"checking"}
{"record":"account","id":1,"name":"B","type":"checking"}
{"record":"transaction","id":0,"account":0,"date":"2009-06-02"}
{"record":"transaction","id":0,"account":1,"date":"2009-06-03"}`,
		},
		{
			name: "item id reused across transactions",
			snapshot: `{"record":"account","id":0,"name":"A","type":"checking"}
{"record":"transaction","id":0,"account":0,"date":"2009-06-02"}
{"record":"transaction","id":1,"account":0,"date":"2009-06-03"}
{"record":"item","id":0,"transaction":0,"amount":1,"category":-2}
{"record":"item","id":0,"transaction":1,"amount":2,"category":-2}`,
		},
		{
			name: "account id reused",
			snapshot: `{"record":"account","id":0,"name":"A","type":"checking"}
{"record":"account","id":0,"name":"B","type":"checking"}`,
		},
		{
			name: "transfer leg paired with itself",
			snapshot: `{"record":"account","id":0,"name":"A","type":"checking"}
{"record":"account","id":1,"name":"B","type":"checking"}
{"record":"transaction","id":0,"account":0,"date":"2009-06-02","dest":1,"peer":0}`,
		},
		{
			name: "transfer dest is not the peer's account",
			snapshot: `{"record":"account","id":0,"name":"A","type":"checking"}
{"record":"account","id":1,"name":"B","type":"checking"}
{"record":"account","id":2,"name":"C","type":"checking"}
{"record":"transaction","id":0,"account":0,"date":"2009-06-02","dest":2,"peer":1}
{"record":"transaction","id":1,"account":1,"date":"2009-06-02","dest":0,"peer":0}`,
		},
		{
			name: "transfer legs in the same account",
			snapshot: `{"record":"account","id":0,"name":"A","type":"checking"}
{"record":"transaction","id":0,"account":0,"date":"2009-06-02","dest":0,"peer":1}
{"record":"transaction","id":1,"account":0,"date":"2009-06-02","dest":0,"peer":0}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeCashbox(strings.NewReader(tc.snapshot)); err == nil {
				t.Error("DecodeCashbox accepted a corrupt snapshot")
			}
		})
	}
}

func TestDecodeCashbox_SentinelCategoryReferences(t *testing.T) {
	snapshot := `{"record":"account","id":0,"name":"Checking","type":"checking"}
{"record":"transaction","id":0,"account":0,"date":"2009-06-02","payee":"ATM"}
{"record":"item","id":0,"transaction":0,"amount":40,"category":-2}`
	cb, err := DecodeCashbox(strings.NewReader(snapshot))
	if err != nil {
		t.Fatal(err)
	}
	tx := cb.Account("Checking").Transaction(0)
	if got := tx.Category(); got != None {
		t.Errorf("restored category = %v, want the None sentinel", got)
	}
}

func TestDecodeCashbox_Empty(t *testing.T) {
	cb, err := DecodeCashbox(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	for range cb.Accounts() {
		t.Error("empty snapshot should restore an empty cashbox")
	}
}
