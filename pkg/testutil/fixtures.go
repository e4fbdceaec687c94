package testutil

import (
	"github.com/google/uuid"
)

// Fixed identifiers for deterministic tests.
var (
	TestUserID     = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestAdminID    = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestCompanyID  = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestCompany2ID = uuid.MustParse("00000000-0000-0000-0000-000000000011")
	TestProductID  = uuid.MustParse("00000000-0000-0000-0000-000000000020")
	TestProduct2ID = uuid.MustParse("00000000-0000-0000-0000-000000000021")
)
