package core

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utamahr/internal/domain/auth"
)

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

type fakeStore struct {
	employees []Employee
}

func (f fakeStore) ListDirectory(context.Context, string) ([]Employee, error) {
	out := make([]Employee, len(f.employees))
	copy(out, f.employees)
	return out, nil
}

func TestRenderDirectoryPaginates(t *testing.T) {
	var employees []Employee
	for i := 0; i < 12; i++ {
		employees = append(employees, Employee{ID: fmt.Sprint(i), FullName: fmt.Sprintf("Pekerja %d", i), Email: "x@maju.my"})
	}

	out, err := RenderDirectory(context.Background(), employees, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.GreaterOrEqual(t, len(pageObject.FindAll(out, -1)), 2)
}

func TestRenderDirectoryEmpty(t *testing.T) {
	out, err := RenderDirectory(context.Background(), nil, time.Time{})
	require.NoError(t, err)
	assert.Len(t, pageObject.FindAll(out, -1), 1)
}

func TestDirectoryFiltersForViewer(t *testing.T) {
	svc := NewService(fakeStore{employees: []Employee{
		{ID: "e1", FullName: "Aisyah", NRIC: "900101-14-5678", BankAccount: "123"},
		{ID: "e2", FullName: "Badrul", NRIC: "910202-10-1111", BankAccount: "456"},
	}}, nil, nil)

	manager := auth.UserContext{TenantID: "t1", RoleName: auth.RoleManager, EmployeeID: "e1"}
	got, err := svc.Directory(context.Background(), manager)
	require.NoError(t, err)
	assert.Equal(t, "900101-14-5678", got[0].NRIC)
	assert.Empty(t, got[1].NRIC)
	assert.Empty(t, got[0].BankAccount)

	hr := auth.UserContext{TenantID: "t1", RoleName: auth.RoleHR}
	got, err = svc.Directory(context.Background(), hr)
	require.NoError(t, err)
	assert.Equal(t, "910202-10-1111", got[1].NRIC)

	out, err := svc.DirectoryPDF(context.Background(), hr)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
