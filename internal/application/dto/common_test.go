package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPage_AcotaValores(t *testing.T) {
	cases := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{"vacío", PageRequest{}, PageRequest{Page: 0, Size: defaultPageSize}},
		{"negativos", PageRequest{Page: -1, Size: -5}, PageRequest{Page: 0, Size: defaultPageSize}},
		{"size excesivo", PageRequest{Page: 3, Size: 500}, PageRequest{Page: 3, Size: maxPageSize}},
		{"página enorme", PageRequest{Page: 922337203685477581, Size: 10}, PageRequest{Page: maxPage, Size: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.DefaultPage()
			assert.Equal(t, tc.want, p)
		})
	}
}

func TestOffset_NoDesbordaTrasDefaultPage(t *testing.T) {
	p := PageRequest{Page: math.MaxInt, Size: math.MaxInt}
	p.DefaultPage()
	assert.GreaterOrEqual(t, p.Offset(), 0)
	assert.LessOrEqual(t, p.Offset(), math.MaxInt32)
}

func TestNewPageResponse(t *testing.T) {
	assert.Equal(t, PageResponse{Page: 1, Size: 10, TotalPages: 3, TotalElements: 21}, NewPageResponse(PageRequest{Page: 1, Size: 10}, 21))
	assert.Equal(t, 0, NewPageResponse(PageRequest{Size: 10}, 0).TotalPages)
}
