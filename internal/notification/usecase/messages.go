package usecase

// User-facing notification texts. The app ships in Korean.
const (
	msgApprovedTitle = "기업 회원 승인 완료"
	msgApprovedBody  = "관리자가 계정을 승인했습니다. 이제 서비스를 이용할 수 있습니다."
	msgRejectedTitle = "기업 회원 승인 거절"
	msgRejectedBody  = "승인이 거절되었습니다. 입력 정보를 확인해주세요."

	msgPostHiddenTitle   = "게시글이 삭제되었습니다"
	msgPostHiddenDefault = "관리자가 정책 위반으로 게시글을 삭제했습니다."

	msgPostLikeTitle       = "게시글에 좋아요가 달렸습니다"
	msgPostLikeFallback    = "게시글"
	msgPostLikeFormat      = "%s에 새 좋아요가 있습니다."
	msgCommentLikeTitle    = "댓글에 좋아요가 달렸습니다"
	msgCommentLikeFormat   = "\"%s\" 댓글에 좋아요가 추가되었습니다."
	msgCommentLikeFallback = "작성한 댓글에 좋아요가 달렸습니다."

	msgSignupTitle            = "새 기업 회원 승인 요청"
	msgSignupFormat           = "%s의 가입 신청이 접수되었습니다."
	msgSignupApplicantDefault = "기업 회원"
)

// Push data payload keys and values read by the mobile client.
const (
	dataKeyUID            = "uid"
	dataKeyApprovalStatus = "approvalStatus"
	dataKeyType           = "type"
	dataKeyApplicant      = "applicant"

	approvalStatusApproved = "approved"
	approvalStatusRejected = "rejected"
	dataTypeSignup         = "corporate_signup"
)
