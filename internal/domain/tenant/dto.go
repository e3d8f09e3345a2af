package tenant

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	AdminEmail   string `json:"adminEmail" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	CustomDomain string `json:"customDomain"`
}

type LoginRequest struct {
	AdminEmail string `json:"adminEmail" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name         *string        `json:"name"`
	CustomDomain *string        `json:"customDomain"`
	Details      map[string]any `json:"details"`
	Facilities   *[]string      `json:"facilities"`
}

type UpdateSiteSettingsRequest struct {
	SiteSettings *SiteSettingsPatch `json:"siteSettings" binding:"required"`
}
