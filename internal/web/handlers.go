package web

import (
	"errors"
	"net/http"

	"assetboard/internal/auth"
	"assetboard/internal/models"
	"assetboard/internal/store"

	"github.com/gin-gonic/gin"
)

// Index renders the home view: all assets plus the full update feed ordered
// by creation time.
func (s *Server) Index(c *gin.Context) {
	assets, err := s.store.ListAssets()
	if err != nil {
		s.serverError(c, err)
		return
	}
	updates, err := s.store.ListAssetUpdates()
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "index.html", gin.H{
		"Title":        "Home",
		"Assets":       assets,
		"AssetUpdates": updates,
	})
}

// LoginForm renders the sign-in page.
func (s *Server) LoginForm(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	s.render(c, http.StatusOK, "login.html", gin.H{
		"Title":  "Sign In",
		"Form":   loginForm{},
		"Errors": fieldErrors{},
		"Next":   c.Query("next"),
	})
}

// Login verifies credentials and establishes a session. Bad credentials
// re-render the form with a flash; the post-login target comes from the next
// parameter after the open-redirect guard.
func (s *Server) Login(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		s.render(c, http.StatusOK, "login.html", gin.H{
			"Title":  "Sign In",
			"Form":   form,
			"Errors": bindErrors(err),
			"Next":   c.Query("next"),
		})
		return
	}

	user, err := s.store.GetUserByUsername(form.Username)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.serverError(c, err)
		return
	}
	if user == nil || !auth.CheckPassword(form.Password, user.PasswordHash) {
		s.render(c, http.StatusOK, "login.html", gin.H{
			"Title":  "Sign In",
			"Flash":  "Invalid username or password",
			"Form":   loginForm{Username: form.Username, RememberMe: form.RememberMe},
			"Errors": fieldErrors{},
			"Next":   c.Query("next"),
		})
		return
	}

	if err := s.sessions.Login(c, user, form.RememberMe); err != nil {
		s.serverError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, auth.SafeNext(c.Query("next")))
}

// Logout clears the session and returns to the landing page.
func (s *Server) Logout(c *gin.Context) {
	s.sessions.Logout(c)
	c.Redirect(http.StatusFound, "/")
}

// RegisterForm renders the registration page.
func (s *Server) RegisterForm(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	s.render(c, http.StatusOK, "register.html", gin.H{
		"Title":  "Register",
		"Form":   registrationForm{},
		"Errors": fieldErrors{},
	})
}

// Register creates a new user with a hashed password. Username and email
// collisions are checked up front and again on the insert itself, so a race
// between two registrations still lands as a form error.
func (s *Server) Register(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form registrationForm
	errs := fieldErrors{}
	if err := c.ShouldBind(&form); err != nil {
		errs = bindErrors(err)
	} else {
		if form.Password != form.ConfirmPassword {
			errs["confirm_password"] = "Passwords do not match."
		}
		if taken, err := s.store.UsernameTaken(form.Username, 0); err != nil {
			s.serverError(c, err)
			return
		} else if taken {
			errs["username"] = "Please use a different username."
		}
		if taken, err := s.store.EmailTaken(form.Email); err != nil {
			s.serverError(c, err)
			return
		} else if taken {
			errs["email"] = "Please use a different email address."
		}
	}

	if len(errs) == 0 {
		hash, err := auth.HashPassword(form.Password)
		if err != nil {
			s.serverError(c, err)
			return
		}
		user := &models.User{Username: form.Username, Email: form.Email, PasswordHash: hash}

		switch err := s.store.CreateUser(user); {
		case err == nil:
			setFlash(c, "Congratulations, you are now a registered user!")
			c.Redirect(http.StatusSeeOther, "/login")
			return
		case errors.Is(err, store.ErrDuplicate):
			if taken, terr := s.store.UsernameTaken(form.Username, 0); terr == nil && taken {
				errs["username"] = "Please use a different username."
			} else {
				errs["email"] = "Please use a different email address."
			}
		default:
			s.serverError(c, err)
			return
		}
	}

	form.Password = ""
	form.ConfirmPassword = ""
	s.render(c, http.StatusOK, "register.html", gin.H{
		"Title":  "Register",
		"Form":   form,
		"Errors": errs,
	})
}

// UserProfile renders a user page with the updates they authored.
func (s *Server) UserProfile(c *gin.Context) {
	user, err := s.store.GetUserByUsername(c.Param("username"))
	if errors.Is(err, store.ErrNotFound) {
		s.notFound(c)
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}

	updates, err := s.store.ListAssetUpdatesByAuthor(user.ID)
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "user.html", gin.H{
		"Title":        user.Username,
		"User":         user,
		"AssetUpdates": updates,
	})
}

// EditProfileForm renders the profile editor prefilled from the current
// user.
func (s *Server) EditProfileForm(c *gin.Context) {
	user := currentUser(c)
	s.render(c, http.StatusOK, "edit_profile.html", gin.H{
		"Title":  "Edit Profile",
		"Form":   editProfileForm{Username: user.Username, AboutMe: user.AboutMe},
		"Errors": fieldErrors{},
	})
}

// EditProfile updates the current user's username and about text. The
// collision check exempts the user's own current username.
func (s *Server) EditProfile(c *gin.Context) {
	user := currentUser(c)

	var form editProfileForm
	errs := fieldErrors{}
	if err := c.ShouldBind(&form); err != nil {
		errs = bindErrors(err)
	} else {
		if taken, err := s.store.UsernameTaken(form.Username, user.ID); err != nil {
			s.serverError(c, err)
			return
		} else if taken {
			errs["username"] = "Please use a different username."
		}
	}

	if len(errs) == 0 {
		switch err := s.store.UpdateProfile(user, form.Username, form.AboutMe); {
		case err == nil:
			setFlash(c, "Your changes have been saved.")
			c.Redirect(http.StatusSeeOther, "/edit_profile")
			return
		case errors.Is(err, store.ErrDuplicate):
			errs["username"] = "Please use a different username."
		default:
			s.serverError(c, err)
			return
		}
	}

	s.render(c, http.StatusOK, "edit_profile.html", gin.H{
		"Title":  "Edit Profile",
		"Form":   form,
		"Errors": errs,
	})
}

// AssetPage renders an asset with its updates, oldest first.
func (s *Server) AssetPage(c *gin.Context) {
	asset, err := s.store.GetAssetByName(c.Param("asset_name"))
	if errors.Is(err, store.ErrNotFound) {
		s.notFound(c)
		return
	}
	if err != nil {
		s.serverError(c, err)
		return
	}

	updates, err := s.store.ListAssetUpdatesByAsset(asset.ID)
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "asset.html", gin.H{
		"Title":        asset.Name,
		"Asset":        asset,
		"AssetUpdates": updates,
	})
}

// CreateAssetForm renders the asset creation page.
func (s *Server) CreateAssetForm(c *gin.Context) {
	s.render(c, http.StatusOK, "create_asset.html", gin.H{
		"Title":  "Create Asset",
		"Form":   createAssetForm{},
		"Errors": fieldErrors{},
	})
}

// CreateAsset persists a new asset. Uniqueness violations from the store are
// converted to field errors on the offending column.
func (s *Server) CreateAsset(c *gin.Context) {
	var form createAssetForm
	errs := fieldErrors{}
	if err := c.ShouldBind(&form); err != nil {
		errs = bindErrors(err)
	}

	if len(errs) == 0 {
		asset := &models.Asset{
			Name:   form.AssetName,
			Thesis: form.AssetThesis,
			Type:   form.AssetType,
			Class:  form.AssetClass,
		}
		switch err := s.store.CreateAsset(asset); {
		case err == nil:
			setFlash(c, "Congratulations, you have just created a new asset!")
			c.Redirect(http.StatusSeeOther, "/create_asset")
			return
		case errors.Is(err, store.ErrDuplicate):
			if _, gerr := s.store.GetAssetByName(form.AssetName); gerr == nil {
				errs["asset_name"] = "An asset with this name already exists."
			} else {
				errs["asset_thesis"] = "An asset with this thesis already exists."
			}
		default:
			s.serverError(c, err)
			return
		}
	}

	s.render(c, http.StatusOK, "create_asset.html", gin.H{
		"Title":  "Create Asset",
		"Form":   form,
		"Errors": errs,
	})
}

// CreateAssetUpdateForm renders the update creation page; the asset choices
// are queried at handler entry.
func (s *Server) CreateAssetUpdateForm(c *gin.Context) {
	assets, err := s.store.ListAssets()
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "create_asset_update.html", gin.H{
		"Title":  "Create Asset Update",
		"Assets": assets,
		"Form":   createAssetUpdateForm{},
		"Errors": fieldErrors{},
	})
}

// CreateAssetUpdate persists a new update against one of the currently
// enumerated assets. The author foreign key is recorded when a session
// resolves.
func (s *Server) CreateAssetUpdate(c *gin.Context) {
	assets, err := s.store.ListAssets()
	if err != nil {
		s.serverError(c, err)
		return
	}

	var form createAssetUpdateForm
	errs := fieldErrors{}
	if err := c.ShouldBind(&form); err != nil {
		errs = bindErrors(err)
	} else if !validAssetChoice(assets, form.Asset) {
		errs["asset"] = "Not a valid choice."
	}

	if len(errs) == 0 {
		update := &models.AssetUpdate{
			AssetID: form.Asset,
			Title:   form.Title,
			Content: form.Content,
		}
		if user := currentUser(c); user != nil {
			update.AuthorID = &user.ID
		}
		if err := s.store.CreateAssetUpdate(update); err != nil {
			s.serverError(c, err)
			return
		}
		setFlash(c, "Congratulations, you have just created a new asset update!")
		c.Redirect(http.StatusSeeOther, "/create_asset_update")
		return
	}

	s.render(c, http.StatusOK, "create_asset_update.html", gin.H{
		"Title":  "Create Asset Update",
		"Assets": assets,
		"Form":   form,
		"Errors": errs,
	})
}

func validAssetChoice(assets []models.Asset, id uint) bool {
	for _, a := range assets {
		if a.ID == id {
			return true
		}
	}
	return false
}
