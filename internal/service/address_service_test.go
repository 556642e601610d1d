package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/address"
	"github.com/DineshVarikuppala/Dukanam/internal/datamodels/user"
	"github.com/DineshVarikuppala/Dukanam/internal/repository/mysql"
)

func TestAddressDefaultToggle(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, mysql.NewAddressRepository(db))

	u := seedUser(t, db, user.RoleCustomer)

	home := &address.Address{UserID: u.ID, Label: "Home", FullAddress: "1 Park Lane", IsDefault: true}
	require.NoError(t, svc.Create(ctxb(), home))

	office := &address.Address{UserID: u.ID, Label: "Office", FullAddress: "9 Tech Park", IsDefault: true}
	require.NoError(t, svc.Create(ctxb(), office))

	// 新默认生效后旧默认被清掉
	def, err := svc.GetDefault(ctxb(), u.ID)
	require.NoError(t, err)
	require.Equal(t, office.ID, def.ID)

	list, err := svc.List(ctxb(), u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	defaults := 0
	for _, a := range list {
		if a.IsDefault {
			defaults++
		}
	}
	require.Equal(t, 1, defaults)

	// 把默认切回 Home
	_, err = svc.Update(ctxb(), u.ID, home.ID, &address.Address{IsDefault: true})
	require.NoError(t, err)
	def, err = svc.GetDefault(ctxb(), u.ID)
	require.NoError(t, err)
	require.Equal(t, home.ID, def.ID)
}

func TestAddressValidationAndOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, mysql.NewAddressRepository(db))

	alice := seedUser(t, db, user.RoleCustomer)
	bob := seedUser(t, db, user.RoleCustomer)

	err := svc.Create(ctxb(), &address.Address{UserID: alice.ID, Label: "", FullAddress: "x"})
	require.ErrorIs(t, err, ErrInvalidInput)

	a := &address.Address{UserID: alice.ID, Label: "Home", FullAddress: "1 Park Lane"}
	require.NoError(t, svc.Create(ctxb(), a))

	// 别人的地址不能改也不能删
	_, err = svc.Update(ctxb(), bob.ID, a.ID, &address.Address{Label: "Hacked"})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, svc.Delete(ctxb(), bob.ID, a.ID), ErrUnauthorized)

	require.NoError(t, svc.Delete(ctxb(), alice.ID, a.ID))
	require.ErrorIs(t, svc.Delete(ctxb(), alice.ID, a.ID), ErrNotFound)
}

func TestAddressGetDefault_NoneSet(t *testing.T) {
	db := newTestDB(t)
	svc := NewAddressService(db, mysql.NewAddressRepository(db))

	u := seedUser(t, db, user.RoleCustomer)
	require.NoError(t, svc.Create(ctxb(), &address.Address{UserID: u.ID, Label: "Home", FullAddress: "1 Park Lane"}))

	_, err := svc.GetDefault(ctxb(), u.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
