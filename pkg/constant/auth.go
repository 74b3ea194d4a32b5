package constant

const (
	ALREADY_EXISTS       = "%s already exists"
	CREATED              = "%s created successfully"
	INVALID_REQUEST      = "Invalid request payload"
	CANT_FIND            = "%s not found"
	SOMETHING_WENT_WRONG = "something went wrong"

	REGISTRATION       = "Registration"
	LOGIN_SUCCESS      = "Login Successfully"
	USER_NOT_FOUND     = "User Not Found"
	INVALID_PASSWORD   = "Invalid Password"
	PASSWORD_TOO_LONG  = "Password must be at most 72 bytes"
	UNAUTHORIZED       = "Unauthorized Access"
	PROFILE_DETAILS    = "Profile Details"
	PROFILE_UPDATED    = "Profile Update Successfully"
	EMAIL_NOT_EXIST    = "User email does not exist"
	EMAIL_SEND_FAILED  = "Email sending failed"
	CODE_SENT          = "Verification successfully, check email"
	CODE_VERIFIED      = "Verification successfully"
	WRONG_CODE         = "Wrong Verification Code"
	PASSWORD_RESET     = "User ResetPassword successfully"
	VERIFICATION_TITLE = "Task Manager Verification Code"
	VERIFICATION_BODY  = "Your verification code is: %s"
)

// Response envelope states.
const (
	STATUS_SUCCESS = "success"
	STATUS_FAIL    = "fail"
)
