package store

// Phase is the stage of an async action. Synchronous actions have none.
type Phase string

const (
	Pending   Phase = "pending"
	Fulfilled Phase = "fulfilled"
	Rejected  Phase = "rejected"
)

// Action is what reducers consume. Reason is set on rejected actions only.
type Action struct {
	Type    string
	Phase   Phase
	Payload any
	Reason  string
}

// Async action types.
const (
	TypeRegister      = "auth/register"
	TypeLogin         = "auth/login"
	TypeSignOut       = "auth/signOut"
	TypeAddBlog       = "blog/add"
	TypeUpdateBlog    = "blog/update"
	TypeDeleteBlog    = "blog/delete"
	TypeFetchAllBlogs = "blog/fetchAll"
	TypeFetchByAuthor = "blog/fetchByAuthor"
	TypeFetchSingle   = "blog/fetchSingle"
	TypeAddComment    = "blog/addComment"
	TypeEditComment   = "blog/editComment"
	TypeDeleteComment = "blog/deleteComment"
)

// Synchronous action types.
const (
	TypeSetUser                  = "auth/setUser"
	TypeLogout                   = "auth/logout"
	TypeAuthClearError           = "auth/clearError"
	TypeAuthClearSuccess         = "auth/clearSuccess"
	TypeSetRestoring             = "auth/setRestoring"
	TypeSetPendingRegistration   = "auth/setPendingRegistration"
	TypeClearPendingRegistration = "auth/clearPendingRegistration"

	TypeBlogClearError   = "blog/clearError"
	TypeBlogClearSuccess = "blog/clearSuccess"
	TypeClearSingleBlog  = "blog/clearSingleBlog"
	TypeResetBlogState   = "blog/resetBlogState"
)

func pending(typ string) Action {
	return Action{Type: typ, Phase: Pending}
}

func fulfilled(typ string, payload any) Action {
	return Action{Type: typ, Phase: Fulfilled, Payload: payload}
}

func rejected(typ, reason string) Action {
	return Action{Type: typ, Phase: Rejected, Reason: reason}
}
