package yappy

// successCode is the business status Yappy reports on success. An HTTP 2xx
// alone does not imply the operation succeeded.
const successCode = "YP-0000"

type statusBlock struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

// text returns whichever human-readable field the provider populated.
func (s statusBlock) text() string {
	if s.Message != "" {
		return s.Message
	}
	return s.Description
}

type envelope[T any] struct {
	Body   T           `json:"body"`
	Status statusBlock `json:"status"`
}

type deviceDescriptor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	User string `json:"user"`
}

type openDevicePayload struct {
	Body openDeviceBody `json:"body"`
}

type openDeviceBody struct {
	Device  deviceDescriptor `json:"device"`
	GroupID string           `json:"group_id"`
}

type openDeviceResponse struct {
	Token string `json:"token"`
}

type closeDeviceResponse struct {
	Summary struct {
		Transactions int     `json:"transactions"`
		Amount       float64 `json:"amount"`
	} `json:"summary"`
}

type chargeAmount struct {
	SubTotal float64 `json:"sub_total"`
	Tax      float64 `json:"tax"`
	Tip      float64 `json:"tip"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

type qrPayload struct {
	Body qrPayloadBody `json:"body"`
}

type qrPayloadBody struct {
	ChargeAmount chargeAmount `json:"charge_amount"`
	OrderID      string       `json:"order_id,omitempty"`
	Description  string       `json:"description,omitempty"`
}

type qrResponse struct {
	Hash          string `json:"hash"`
	TransactionID string `json:"transactionId"`
	Date          string `json:"date"`
}

type transactionResponse struct {
	Status string `json:"status"`
}
