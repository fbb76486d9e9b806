package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_InitialState(t *testing.T) {
	c := NewController()
	st := c.State()

	assert.Equal(t, Landing, st.View)
	assert.Nil(t, st.Session)
	assert.Equal(t, RoleNone, st.LoginRole)
	assert.Equal(t, map[Group]string{AdminTabs: "payments", UserTabs: "payment"}, st.Tabs)
	assert.Empty(t, st.Modals)
}

func TestController_DashboardFollowsRole(t *testing.T) {
	c := NewController()

	assert.Equal(t, Landing, c.ShowDashboard(), "no session falls back to landing")

	c.SignIn(Session{ID: "s1", Actor: Actor{Username: "admin", Name: "admin"}, Role: RoleAdmin})
	require.NoError(t, c.SelectTab(AdminTabs, "users"))
	assert.Equal(t, AdminDashboard, c.ShowDashboard())
	assert.Equal(t, "payments", c.ActiveTab(AdminTabs), "dashboard resets to the default tab")

	c.SignIn(Session{ID: "s2", Actor: Actor{UserID: 2, Name: "Priya"}, Role: RoleUser})
	assert.Equal(t, UserDashboard, c.ShowDashboard())
	assert.Equal(t, "s2", c.Session().ID)
}

func TestController_LogoutAlwaysReturnsToLanding(t *testing.T) {
	for _, view := range []func(c *Controller){
		func(c *Controller) { c.ShowLogin(RoleAdmin) },
		func(c *Controller) { c.ShowRegister() },
		func(c *Controller) {
			c.SignIn(Session{ID: "s", Role: RoleUser})
			c.ShowDashboard()
			c.ShowSMS("paid")
		},
	} {
		c := NewController()
		view(c)
		c.Logout()

		st := c.State()
		assert.Equal(t, Landing, st.View)
		assert.Nil(t, st.Session)
		assert.Empty(t, st.Modals)
		assert.Empty(t, st.SMSText)
	}
}

func TestController_ShowLandingClearsSession(t *testing.T) {
	c := NewController()
	c.SignIn(Session{ID: "s", Role: RoleUser})
	c.ShowModal(PaymentProcessing)
	c.ShowSMS("Dear Asha")
	c.ShowLanding()
	assert.Nil(t, c.Session())
	assert.Equal(t, Landing, c.View())

	st := c.State()
	assert.Empty(t, st.Modals)
	assert.Empty(t, st.SMSText)
}

func TestController_Modals(t *testing.T) {
	c := NewController()
	c.ShowModal(PaymentProcessing)
	assert.True(t, c.ModalVisible(PaymentProcessing))

	c.HideModal(PaymentProcessing)
	c.ShowSMS("Dear Asha")
	st := c.State()
	assert.Equal(t, []Modal{SMS}, st.Modals)
	assert.Equal(t, "Dear Asha", st.SMSText)

	c.HideModal(SMS)
	assert.Empty(t, c.State().SMSText)
}

func TestController_SelectTabErrors(t *testing.T) {
	c := NewController()
	assert.Error(t, c.SelectTab(Group("other"), "payments"))
	assert.Error(t, c.SelectTab(UserTabs, "payments"))
	assert.Equal(t, "payment", c.ActiveTab(UserTabs))
}

func TestTabSet_ExactlyOneActive(t *testing.T) {
	set := NewAdminTabs()
	for _, name := range []string{"users", "notifications", "payments", "users"} {
		require.NoError(t, set.Select(name))
		assert.Equal(t, name, set.Active())
		assert.Equal(t, 1, set.ActiveCount())
	}
	assert.Error(t, set.Select("history"))
	assert.Equal(t, "users", set.Active())
	assert.Equal(t, []string{"payments", "users", "notifications"}, set.Names())
}

func TestParse(t *testing.T) {
	v, err := ParseView("user-dashboard")
	require.NoError(t, err)
	assert.Equal(t, UserDashboard, v)
	_, err = ParseView("settings")
	assert.Error(t, err)

	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	_, err = ParseRole("")
	assert.Error(t, err)
}
