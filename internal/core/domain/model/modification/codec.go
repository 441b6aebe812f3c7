package modification

import (
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// payloadJSON is the stored and wire form of a Payload. Kind selects which of
// the remaining fields are meaningful.
type payloadJSON struct {
	Kind         Type         `json:"kind"`
	Lines        []lineJSON   `json:"lines,omitempty"`
	Address      *addressJSON `json:"address,omitempty"`
	DeliveryTime *time.Time   `json:"delivery_time,omitempty"`
	Item         *itemJSON    `json:"item,omitempty"`
	LineID       string       `json:"line_id,omitempty"`
}

type lineJSON struct {
	LineID   string `json:"line_id"`
	Quantity int    `json:"quantity"`
}

type addressJSON struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

type itemJSON struct {
	LineID    string `json:"line_id"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// MarshalPayload encodes p with its kind discriminator. Empty originals
// (no delivery time yet, item not present before addition) encode as kind only.
func MarshalPayload(p Payload) ([]byte, error) {
	out := payloadJSON{Kind: p.Type()}

	switch v := p.(type) {
	case QuantityPayload:
		out.Lines = make([]lineJSON, 0, len(v.Lines))
		for _, l := range v.Lines {
			out.Lines = append(out.Lines, lineJSON{LineID: l.LineID.String(), Quantity: l.Quantity})
		}
	case AddressPayload:
		if v.Address.Validate() == nil {
			out.Address = &addressJSON{
				Line1:    v.Address.Line1(),
				Line2:    v.Address.Line2(),
				City:     v.Address.City(),
				Postcode: v.Address.Postcode(),
				Country:  v.Address.Country(),
			}
		}
	case DeliveryTimePayload:
		if !v.DeliveryTime.IsZero() {
			t := v.DeliveryTime.UTC()
			out.DeliveryTime = &t
		}
	case ItemAdditionPayload:
		if v.Item.Validate() == nil {
			out.Item = &itemJSON{
				LineID:    v.Item.ID().String(),
				SKU:       v.Item.SKU(),
				Quantity:  v.Item.Quantity(),
				UnitPrice: v.Item.UnitPrice(),
			}
		}
	case ItemRemovalPayload:
		out.LineID = v.LineID.String()
	default:
		return nil, fmt.Errorf("marshal payload: unsupported type %T", p)
	}

	return json.Marshal(out)
}

// UnmarshalPayload decodes a payload written by MarshalPayload.
func UnmarshalPayload(data []byte) (Payload, error) {
	return UnmarshalPayloadAs("", data)
}

// UnmarshalPayloadAs decodes data as a payload of type t. A missing kind in
// data is taken from t; a kind that disagrees with t is a validation error.
// An empty t accepts whatever kind data carries.
func UnmarshalPayloadAs(t Type, data []byte) (Payload, error) {
	var in payloadJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", err)
	}
	if in.Kind == "" {
		in.Kind = t
	}
	if t != "" && in.Kind != t {
		return nil, errs.NewValueIsInvalidErrorWithCause("payload",
			fmt.Errorf("payload kind %q does not match modification type %q", in.Kind, t))
	}

	switch in.Kind {
	case QuantityChange:
		lines := make([]order.LineQuantity, 0, len(in.Lines))
		for _, l := range in.Lines {
			id, err := kernel.UUIDFromString(l.LineID)
			if err != nil {
				return nil, err
			}
			lines = append(lines, order.LineQuantity{LineID: id, Quantity: l.Quantity})
		}
		return QuantityPayload{Lines: lines}, nil
	case AddressChange:
		if in.Address == nil {
			return AddressPayload{}, nil
		}
		addr, err := kernel.NewAddress(in.Address.Line1, in.Address.Line2, in.Address.City,
			in.Address.Postcode, in.Address.Country)
		if err != nil {
			return nil, err
		}
		return AddressPayload{Address: addr}, nil
	case DeliveryTimeChange:
		if in.DeliveryTime == nil {
			return DeliveryTimePayload{}, nil
		}
		return DeliveryTimePayload{DeliveryTime: in.DeliveryTime.UTC()}, nil
	case ItemAddition:
		if in.Item == nil {
			return ItemAdditionPayload{}, nil
		}
		id, err := kernel.UUIDFromString(in.Item.LineID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewLineItem(id, in.Item.SKU, in.Item.Quantity, in.Item.UnitPrice)
		if err != nil {
			return nil, err
		}
		return ItemAdditionPayload{Item: item}, nil
	case ItemRemoval:
		if in.LineID == "" {
			return ItemRemovalPayload{}, nil
		}
		id, err := kernel.UUIDFromString(in.LineID)
		if err != nil {
			return nil, err
		}
		return ItemRemovalPayload{LineID: id}, nil
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("payload", fmt.Errorf("unknown kind %q", in.Kind))
	}
}
