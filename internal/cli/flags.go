package cli

import (
	"time"

	"github.com/alexanderramin/itinera/internal/domain"
	"github.com/spf13/pflag"
)

// slotValue is a --slot flag that only accepts the five slot names.
type slotValue struct {
	slot domain.Slot
}

var _ pflag.Value = (*slotValue)(nil)

func (v *slotValue) String() string { return string(v.slot) }
func (v *slotValue) Type() string   { return "slot" }

func (v *slotValue) Set(s string) error {
	slot, err := domain.ParseSlot(s)
	if err != nil {
		return err
	}
	v.slot = slot
	return nil
}

// itemTypeValue is a --type flag. Aliases are folded and unknown names
// become "other", so Set never fails.
type itemTypeValue struct {
	t   domain.ItemType
	set bool
}

var _ pflag.Value = (*itemTypeValue)(nil)

func (v *itemTypeValue) String() string { return string(v.t) }
func (v *itemTypeValue) Type() string   { return "type" }

func (v *itemTypeValue) Set(s string) error {
	v.t = domain.ParseItemType(s)
	v.set = true
	return nil
}

// dateValue is a YYYY-MM-DD flag.
type dateValue struct {
	t *time.Time
}

var _ pflag.Value = (*dateValue)(nil)

func (v *dateValue) String() string {
	if v.t == nil {
		return ""
	}
	return v.t.Format(dateLayout)
}

func (v *dateValue) Type() string { return "date" }

func (v *dateValue) Set(s string) error {
	d, err := parseDate(s)
	if err != nil {
		return err
	}
	v.t = &d
	return nil
}
