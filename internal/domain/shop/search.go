package shop

import "strings"

// OrderSearch filters order listings. Zero values match everything.
type OrderSearch struct {
	MemberName string      `form:"member_name" json:"member_name"`
	Status     OrderStatus `form:"status" json:"status"`
}

func (s OrderSearch) Normalized() OrderSearch {
	return OrderSearch{
		MemberName: strings.TrimSpace(s.MemberName),
		Status:     OrderStatus(strings.ToUpper(strings.TrimSpace(string(s.Status)))),
	}
}
