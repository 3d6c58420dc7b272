package types

// SignedOrderJSON is the wire representation of an EIP-712 signed order.
// Salt and signatureType are integers on the wire; every other numeric
// field is a decimal string, matching the CLOB's expectations exactly.
type SignedOrderJSON struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Side          string `json:"side"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

// OrderSubmissionRequest wraps a signed order for POST /order.
// Owner is the API key, not the maker address.
type OrderSubmissionRequest struct {
	Order     SignedOrderJSON `json:"order"`
	Owner     string          `json:"owner"`
	OrderType string          `json:"orderType"`
}

// OrderSubmissionResponse is the CLOB's reply to an order submission.
type OrderSubmissionResponse struct {
	Success      bool   `json:"success"`
	ErrorMsg     string `json:"errorMsg"`
	OrderID      string `json:"orderID"`
	Status       string `json:"status"`
	MakingAmount string `json:"makingAmount"`
	TakingAmount string `json:"takingAmount"`
}

// OpenOrder describes a resting order returned by GET /orders or /order/{id}.
type OpenOrder struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Owner        string `json:"owner"`
	Market       string `json:"market"`
	AssetID      string `json:"asset_id"`
	Side         string `json:"side"`
	Outcome      string `json:"outcome"`
	Price        string `json:"price"`
	OriginalSize string `json:"original_size"`
	SizeMatched  string `json:"size_matched"`
	Expiration   string `json:"expiration"`
	OrderType    string `json:"order_type"`
	CreatedAt    int64  `json:"created_at"`
}

// CancelResult reports which orders were cancelled by a cancel request.
// NotCanceled maps order ID to the exchange's reason.
type CancelResult struct {
	Canceled    []string          `json:"canceled"`
	NotCanceled map[string]string `json:"not_canceled"`
}

// PriceResponse is the CLOB /price reply.
type PriceResponse struct {
	Price string `json:"price"`
}
