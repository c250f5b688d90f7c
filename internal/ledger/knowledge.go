package ledger

// Mapping pairs a merchant-description pattern (matched as a
// case-insensitive substring) with its ledger account. The table is an
// ordered list, most-specific-first: when two patterns could both match a
// description, the earlier entry wins.
type Mapping struct {
	Pattern string
	Account string
}

// KeywordRule maps a loose keyword to a candidate account. Keyword rules
// run after the known mappings and may be refined against the live chart of
// accounts, since they were authored against account names that drift.
type KeywordRule struct {
	Keyword string
	Account string
}

// defaultMappings is the curated known-pattern table from manual review of
// historical statements. Order matters (see Mapping).
var defaultMappings = []Mapping{
	{"Apple.Com/Bill Itunes.Com", "Expenses:Entertainment:Music/Movies"},
	{"Payment -Thank You", "Liabilities:Credit Card:BPI Mastercard"},
	{"Metromart Makati", "Expenses:Food:Groceries"},
	{"Google *Youtubepremium", "Expenses:Entertainment:Music/Movies"},
	{"Audible*", "Expenses:Education:Books"},
	{"Nintendo Cd", "Expenses:Entertainment:Recreation"},
	{"Google *Minecraft", "Expenses:Entertainment:Recreation"},
	{"Scribd Inc*588895228 SanFrancisco", "Expenses:Professional Development & Productivity"},
	{"Google Cloud", "Expenses:Professional Development & Productivity"},
	{"Netflix.Com", "Expenses:Entertainment:Music/Movies"},
	{"Medium Monthly SanFrancisco", "Expenses:Professional Development & Productivity"},
	{"DJ*Wall-St-Journal", "Expenses:Education:Newspaper & Magazines"},
	{"DJ*Wsj", "Expenses:Education:Newspaper & Magazines"},
	{"Backblaze", "Expenses:Professional Development & Productivity"},
	{"Epic!Reading", "Expenses:Childcare:Books"},
	{"Grab Makati", "Expenses:Professional Fees"},
	{"AmznDigital*", "Expenses:Education:Books"},
	{"Epic! Reading", "Expenses:Childcare:Books"},
	{"Getepic.Com", "Expenses:Childcare:Books"},
	// "fl" ligature as emitted by the PDF text layer.
	{"Netﬂix.Com", "Expenses:Entertainment:Music/Movies"},
	{"Paypal *Dotphdomain", "Assets:Investments:Investment in Business"},
	{"Reversal-Finance Charges", "Expenses:Banking Costs:Bank Service Charge"},
	{"Smart App", "Expenses:Utilities:Mobile"},
	{"TiezaNaiaT3", "Expenses:Travel:Fare"},
	{"Wsj/Barrons Subscripti", "Expenses:Education:Newspaper & Magazines"},
}

// defaultKeywordRules covers the long tail the known mappings miss.
// Keywords are lowercase; matching is substring over the lowercased
// description, in rule order.
var defaultKeywordRules = []KeywordRule{
	// Tech and digital services
	{"apple", "Expenses:Entertainment:Music/Movies"},
	{"google", "Expenses:Professional Development & Productivity"},
	{"audible", "Expenses:Education:Books"},
	{"netflix", "Expenses:Entertainment:Music/Movies"},
	{"nintendo", "Expenses:Entertainment:Recreation"},
	{"amazon", "Expenses:Household Supplies"},
	{"scribd", "Expenses:Professional Development & Productivity"},
	{"medium", "Expenses:Professional Development & Productivity"},
	{"backblaze", "Expenses:Professional Development & Productivity"},
	{"microsoft", "Expenses:Professional Development & Productivity"},
	{"notion", "Expenses:Professional Development & Productivity"},
	{"lastpass", "Expenses:Professional Development & Productivity"},
	{"curiositystream", "Expenses:Entertainment:Music/Movies"},
	{"economist", "Expenses:Education:Newspaper & Magazines"},
	{"myfitnesspal", "Expenses:Health"},
	{"ground news", "Expenses:Education:Newspaper & Magazines"},
	{"hbogoasia", "Expenses:Entertainment:Music/Movies"},
	{"minecraft", "Expenses:Entertainment:Recreation"},

	// Shopping and e-commerce
	{"shopee", "Expenses:Household Supplies"},
	{"lazada", "Expenses:Household Supplies"},
	{"shein", "Expenses:Clothes"},
	{"metromart", "Expenses:Food:Groceries"},

	// Transportation and delivery
	{"grab", "Expenses:Professional Fees"},
	{"food panda", "Expenses:Food:Dining"},
	{"foodpanda", "Expenses:Food:Dining"},

	// Food and restaurants
	{"cafe", "Expenses:Food:Dining"},
	{"chicken", "Expenses:Food:Dining"},
	{"tonkatsu", "Expenses:Food:Dining"},
	{"grill", "Expenses:Food:Dining"},
	{"restaurant", "Expenses:Food:Dining"},
	{"dynasty", "Expenses:Food:Dining"},

	// Professional and business services
	{"taxumo", "Expenses:Professional Fees"},
	{"paypal", ManualReview},
	{"godaddy", "Assets:Investments:Investment in Business"},
	{"sharesight", "Expenses:Professional Development & Productivity"},

	// Utilities and bills
	{"meralco", "Expenses:Utilities:Electric"},
	{"s&r", "Expenses:Food:Groceries"},

	// Travel
	{"hotel", "Expenses:Travel:Hotel"},

	// Patterns confirmed during manual review
	{"amzndigital", "Expenses:Education:Books"},
	{"getepic", "Expenses:Childcare:Books"},
	{"dotphdomain", "Assets:Investments:Investment in Business"},
	{"reversal", "Expenses:Banking Costs:Bank Service Charge"},
	{"smart app", "Expenses:Utilities:Mobile"},
	{"tiezanaia", "Expenses:Travel:Fare"},
	{"barrons", "Expenses:Education:Newspaper & Magazines"},

	// Payment and credit
	{"payment", "Liabilities:Credit Card:BPI Mastercard"},
	{"thank you", "Liabilities:Credit Card:BPI Mastercard"},
	{"finance charge", "Expenses:Banking Costs:Interest"},
}

// heuristicBucket is the last classification layer before the fallback
// sentinel: broad default accounts keyed on generic terms.
type heuristicBucket struct {
	terms   []string
	account string
}

var defaultHeuristics = []heuristicBucket{
	{[]string{"payment", "thank you", "credit"}, "Liabilities:Credit Card:BPI Mastercard"},
	{[]string{"restaurant", "cafe", "dining", "food"}, "Expenses:Food:Dining"},
	{[]string{"store", "shop", "market", "mall"}, "Expenses:Electronics & Software"},
	{[]string{"transport", "taxi", "grab", "uber"}, "Expenses:Professional Fees"},
}
